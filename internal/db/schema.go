package db

import (
	"context"
	"fmt"
)

// schema mirrors the tables the flight-school UI reads and writes.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NULL,
		is_member TINYINT(1) NOT NULL DEFAULT 1,
		is_staff TINYINT(1) NOT NULL DEFAULT 0,
		role VARCHAR(20) NOT NULL DEFAULT 'member',
		password_hash VARCHAR(255) NULL,
		credit_balance DECIMAL(12,2) NOT NULL DEFAULT 0,
		licence_number VARCHAR(50) NULL,
		licence_expiry DATE NULL,
		medical_expiry DATE NULL,
		ratings JSON NULL,
		endorsements JSON NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS aircraft (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		registration VARCHAR(20) NOT NULL,
		type VARCHAR(100) NOT NULL,
		model VARCHAR(100) NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL DEFAULT 'Active',
		current_tacho DECIMAL(10,1) NOT NULL DEFAULT 0,
		current_hobbs DECIMAL(10,1) NOT NULL DEFAULT 0,
		record_hobbs TINYINT(1) NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_aircraft_registration (registration)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS syllabuses (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(150) NOT NULL,
		description TEXT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS flight_types (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		hourly_rate DECIMAL(10,2) NOT NULL DEFAULT 0,
		requires_solo_signout TINYINT(1) NOT NULL DEFAULT 0
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS lessons (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		syllabus_id BIGINT NULL,
		name VARCHAR(150) NOT NULL,
		description TEXT NULL,
		sequence INT NOT NULL DEFAULT 0,
		KEY idx_lessons_syllabus (syllabus_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS chargeables (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(150) NOT NULL,
		category VARCHAR(50) NOT NULL,
		amount DECIMAL(10,2) NOT NULL DEFAULT 0
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		aircraft_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		instructor_id BIGINT NULL,
		flight_type_id BIGINT NOT NULL,
		lesson_id BIGINT NULL,
		booking_type VARCHAR(20) NOT NULL DEFAULT 'member',
		start_time DATETIME NOT NULL,
		end_time DATETIME NOT NULL,
		status VARCHAR(20) NOT NULL,
		checked_out_time DATETIME NULL,
		eta DATETIME NULL,
		route TEXT NULL,
		description TEXT NULL,
		voucher_code VARCHAR(50) NULL,
		tacho_start DECIMAL(10,1) NULL,
		tacho_end DECIMAL(10,1) NULL,
		hobbs_start DECIMAL(10,1) NULL,
		hobbs_end DECIMAL(10,1) NULL,
		flight_time DECIMAL(6,1) NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_bookings_start (start_time),
		KEY idx_bookings_aircraft (aircraft_id),
		KEY idx_bookings_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS defects (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		aircraft_id BIGINT NOT NULL,
		name VARCHAR(200) NOT NULL,
		description TEXT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'Open',
		reported_by BIGINT NOT NULL,
		reported_date DATETIME NOT NULL,
		comments JSON NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_defects_aircraft (aircraft_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		invoice_number VARCHAR(40) NOT NULL,
		user_id BIGINT NOT NULL,
		booking_id BIGINT NULL,
		flight_charges JSON NULL,
		additional_charges JSON NULL,
		flight_charge_total DECIMAL(12,2) NOT NULL DEFAULT 0,
		additional_charges_total DECIMAL(12,2) NOT NULL DEFAULT 0,
		total_amount DECIMAL(12,2) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		due_date DATETIME NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_invoice_number (invoice_number),
		KEY idx_invoices_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS invoice_chargeables (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		invoice_id BIGINT NOT NULL,
		chargeable_id BIGINT NULL,
		name VARCHAR(150) NOT NULL,
		amount DECIMAL(10,2) NOT NULL,
		quantity INT NOT NULL,
		total DECIMAL(12,2) NOT NULL,
		KEY idx_invoice_chargeables_invoice (invoice_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS payments (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		invoice_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		amount DECIMAL(12,2) NOT NULL,
		payment_method VARCHAR(30) NOT NULL,
		status VARCHAR(20) NOT NULL,
		payment_date DATETIME NOT NULL,
		KEY idx_payments_invoice (invoice_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS membership_types (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		price DECIMAL(10,2) NOT NULL DEFAULT 0,
		duration_months INT NOT NULL DEFAULT 12
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS memberships (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		membership_type_id BIGINT NOT NULL,
		start_date DATETIME NOT NULL,
		expiry_date DATETIME NOT NULL,
		KEY idx_memberships_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		description TEXT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'todo',
		due_date DATETIME NULL,
		created_by BIGINT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS task_assignments (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		task_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		assigned_by BIGINT NOT NULL,
		assigned_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_task_user (task_id, user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS task_comments (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		task_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		author VARCHAR(200) NOT NULL,
		body TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_task_comments_task (task_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS flight_debriefs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		booking_id BIGINT NOT NULL,
		student_id BIGINT NOT NULL,
		instructor_id BIGINT NOT NULL,
		ratings JSON NULL,
		average_rating DECIMAL(4,2) NULL,
		rated_count INT NOT NULL DEFAULT 0,
		strengths TEXT NULL,
		improvements TEXT NULL,
		comments TEXT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_debrief_booking (booking_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS solosignout_form (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		booking_id BIGINT NOT NULL,
		student_id BIGINT NOT NULL,
		weather_checked TINYINT(1) NOT NULL DEFAULT 0,
		notams_checked TINYINT(1) NOT NULL DEFAULT 0,
		fuel_litres DECIMAL(6,1) NOT NULL DEFAULT 0,
		route TEXT NULL,
		remarks TEXT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		reviewed_by BIGINT NULL,
		reviewed_at DATETIME NULL,
		review_note TEXT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_signout_booking (booking_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS student_syllabus_enrollments (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		syllabus_id BIGINT NOT NULL,
		enrolled_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		UNIQUE KEY uniq_enrollment (user_id, syllabus_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates missing tables. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, db DBTX) error {
	for i, ddl := range schema {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
