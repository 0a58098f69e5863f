package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intdb "flightschool/internal/db"
	"flightschool/internal/domain"
	"flightschool/internal/domain/models"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	trmanager "github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type BookingRepo interface {
	Create(ctx context.Context, b *models.Booking) error
	Get(ctx context.Context, id int64) (models.Booking, error)
	GetForUpdate(ctx context.Context, id int64) (models.Booking, error)
	GetView(ctx context.Context, id int64) (models.BookingView, error)
	List(ctx context.Context, f models.BookingFilter) ([]models.BookingView, error)
	// Update writes b only while the stored status still equals expected.
	Update(ctx context.Context, b models.Booking, expected models.BookingStatus) error
}

type AircraftRepo interface {
	Create(ctx context.Context, a *models.Aircraft) error
	Get(ctx context.Context, id int64) (models.Aircraft, error)
	GetForUpdate(ctx context.Context, id int64) (models.Aircraft, error)
	List(ctx context.Context) ([]models.Aircraft, error)
	Update(ctx context.Context, a models.Aircraft) error
	// UpdateMeters replaces prev with next only when the stored readings still equal prev.
	UpdateMeters(ctx context.Context, id int64, prev, next models.MeterReadings) error
}

type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int64) (models.User, error)
	GetForUpdate(ctx context.Context, id int64) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context, f models.UserFilter) ([]models.User, error)
	Update(ctx context.Context, u models.User) error
	// AdjustCredit adds delta to credit_balance, refusing to go below zero.
	AdjustCredit(ctx context.Context, id int64, delta decimal.Decimal) error
}

type InvoiceRepo interface {
	Create(ctx context.Context, inv *models.Invoice) error
	Get(ctx context.Context, id int64) (models.Invoice, error)
	GetForUpdate(ctx context.Context, id int64) (models.Invoice, error)
	GetByBooking(ctx context.Context, bookingID int64) (models.Invoice, error)
	List(ctx context.Context, f models.InvoiceFilter) ([]models.Invoice, error)
	UpdateStatus(ctx context.Context, id int64, status models.InvoiceStatus) error
	AddChargeables(ctx context.Context, rows []models.InvoiceChargeable) error
}

type PaymentRepo interface {
	Create(ctx context.Context, p *models.Payment) error
	ListByInvoice(ctx context.Context, invoiceID int64) ([]models.Payment, error)
}

type DefectRepo interface {
	Create(ctx context.Context, d *models.Defect) error
	Get(ctx context.Context, id int64) (models.Defect, error)
	List(ctx context.Context, f models.DefectFilter) ([]models.Defect, error)
	UpdateStatus(ctx context.Context, id int64, status models.DefectStatus) error
	AppendComment(ctx context.Context, id int64, c models.DefectComment) error
}

type CatalogRepo interface {
	GetFlightType(ctx context.Context, id int64) (models.FlightType, error)
	ListFlightTypes(ctx context.Context) ([]models.FlightType, error)
	CreateFlightType(ctx context.Context, ft *models.FlightType) error
	GetChargeable(ctx context.Context, id int64) (models.Chargeable, error)
	ListChargeables(ctx context.Context) ([]models.Chargeable, error)
	CreateChargeable(ctx context.Context, c *models.Chargeable) error
	GetLesson(ctx context.Context, id int64) (models.Lesson, error)
	ListLessons(ctx context.Context, syllabusID *int64) ([]models.Lesson, error)
	CreateLesson(ctx context.Context, l *models.Lesson) error
}

type DebriefRepo interface {
	Create(ctx context.Context, d *models.FlightDebrief) error
	GetByBooking(ctx context.Context, bookingID int64) (models.FlightDebrief, error)
}

type SignoutRepo interface {
	Create(ctx context.Context, s *models.SoloSignout) error
	GetForUpdate(ctx context.Context, id int64) (models.SoloSignout, error)
	LatestForBooking(ctx context.Context, bookingID int64) (models.SoloSignout, error)
	Review(ctx context.Context, s models.SoloSignout) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *models.Task) error
	Get(ctx context.Context, id int64) (models.Task, error)
	List(ctx context.Context, f models.TaskFilter) ([]models.Task, error)
	UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) error
	Assign(ctx context.Context, a *models.TaskAssignment) error
	ListAssignments(ctx context.Context, taskID int64) ([]models.TaskAssignment, error)
	AddComment(ctx context.Context, c *models.TaskComment) error
	ListComments(ctx context.Context, taskID int64) ([]models.TaskComment, error)
}

type TrainingRepo interface {
	ListSyllabuses(ctx context.Context) ([]models.Syllabus, error)
	GetSyllabus(ctx context.Context, id int64) (models.Syllabus, error)
	CreateSyllabus(ctx context.Context, s *models.Syllabus) error
	Enroll(ctx context.Context, e *models.Enrollment) error
	ListEnrollments(ctx context.Context, userID int64) ([]models.Enrollment, error)
	ListMembershipTypes(ctx context.Context) ([]models.MembershipType, error)
	GetMembershipType(ctx context.Context, id int64) (models.MembershipType, error)
	CreateMembershipType(ctx context.Context, mt *models.MembershipType) error
	CreateMembership(ctx context.Context, m *models.Membership) error
	ListMemberships(ctx context.Context, userID int64) ([]models.Membership, error)
}

// Repos groups the repositories bound to one connection or transaction.
type Repos interface {
	Bookings() BookingRepo
	Aircraft() AircraftRepo
	Users() UserRepo
	Invoices() InvoiceRepo
	Payments() PaymentRepo
	Defects() DefectRepo
	Catalog() CatalogRepo
	Debriefs() DebriefRepo
	Signouts() SignoutRepo
	Tasks() TaskRepo
	Training() TrainingRepo
}

// Store is the unit of work used by services: plain reads through Repos,
// multi-row writes through InTx.
type Store interface {
	Repos
	InTx(ctx context.Context, fn func(r Repos) error) error
}

type sqlRepos struct {
	db intdb.DBTX
}

func (r sqlRepos) Bookings() BookingRepo  { return BookingRepository{DB: r.db} }
func (r sqlRepos) Aircraft() AircraftRepo { return AircraftRepository{DB: r.db} }
func (r sqlRepos) Users() UserRepo        { return UserRepository{DB: r.db} }
func (r sqlRepos) Invoices() InvoiceRepo  { return InvoiceRepository{DB: r.db} }
func (r sqlRepos) Payments() PaymentRepo  { return PaymentRepository{DB: r.db} }
func (r sqlRepos) Defects() DefectRepo    { return DefectRepository{DB: r.db} }
func (r sqlRepos) Catalog() CatalogRepo   { return CatalogRepository{DB: r.db} }
func (r sqlRepos) Debriefs() DebriefRepo  { return DebriefRepository{DB: r.db} }
func (r sqlRepos) Signouts() SignoutRepo  { return SignoutRepository{DB: r.db} }
func (r sqlRepos) Tasks() TaskRepo        { return TaskRepository{DB: r.db} }
func (r sqlRepos) Training() TrainingRepo { return TrainingRepository{DB: r.db} }

// SQLStore is the MySQL-backed Store. Transactions are opened by the
// transaction manager; repositories inside InTx run on the transaction
// the getter finds in the context.
type SQLStore struct {
	sqlRepos
	DB     *sqlx.DB
	tr     *trmanager.Manager
	getter *trmsqlx.CtxGetter
}

func NewSQLStore(db *sqlx.DB) SQLStore {
	return SQLStore{
		sqlRepos: sqlRepos{db: db},
		DB:       db,
		tr:       trmanager.Must(trmsqlx.NewDefaultFactory(db)),
		getter:   trmsqlx.DefaultCtxGetter,
	}
}

// InTx commits when fn returns nil and rolls back otherwise.
func (s SQLStore) InTx(ctx context.Context, fn func(r Repos) error) error {
	return s.tr.Do(ctx, func(txCtx context.Context) error {
		return fn(sqlRepos{db: s.getter.DefaultTrOrDB(txCtx, s.DB)})
	})
}

func getErr(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return fmt.Errorf("get %s: %w", resource, err)
}

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

func insertID(res sql.Result, err error, resource string) (int64, error) {
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			return 0, domain.ConflictError{Resource: resource, Msg: resource + " already exists", Err: err}
		}
		return 0, fmt.Errorf("insert %s: %w", resource, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", resource, err)
	}
	return id, nil
}

// prefixed qualifies a comma separated column list with a table alias.
func prefixed(alias, cols string) string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
