package services

import (
	"context"
	"sort"
	"strings"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
	"flightschool/internal/repositories"

	"github.com/shopspring/decimal"
)

// memStore is an in-memory Store. InTx snapshots state and restores it when
// fn fails, so tests can observe rollback.
type memStore struct {
	st   *memState
	fail map[string]error
}

type memState struct {
	seq             int64
	bookings        map[int64]models.Booking
	aircraft        map[int64]models.Aircraft
	users           map[int64]models.User
	invoices        map[int64]models.Invoice
	invoiceLines    map[int64]models.InvoiceChargeable
	payments        map[int64]models.Payment
	defects         map[int64]models.Defect
	flightTypes     map[int64]models.FlightType
	chargeables     map[int64]models.Chargeable
	lessons         map[int64]models.Lesson
	debriefs        map[int64]models.FlightDebrief
	signouts        map[int64]models.SoloSignout
	tasks           map[int64]models.Task
	assignments     map[int64]models.TaskAssignment
	taskComments    map[int64]models.TaskComment
	syllabuses      map[int64]models.Syllabus
	enrollments     map[int64]models.Enrollment
	membershipTypes map[int64]models.MembershipType
	memberships     map[int64]models.Membership
}

func newMemStore() *memStore {
	return &memStore{
		st: &memState{
			bookings:        map[int64]models.Booking{},
			aircraft:        map[int64]models.Aircraft{},
			users:           map[int64]models.User{},
			invoices:        map[int64]models.Invoice{},
			invoiceLines:    map[int64]models.InvoiceChargeable{},
			payments:        map[int64]models.Payment{},
			defects:         map[int64]models.Defect{},
			flightTypes:     map[int64]models.FlightType{},
			chargeables:     map[int64]models.Chargeable{},
			lessons:         map[int64]models.Lesson{},
			debriefs:        map[int64]models.FlightDebrief{},
			signouts:        map[int64]models.SoloSignout{},
			tasks:           map[int64]models.Task{},
			assignments:     map[int64]models.TaskAssignment{},
			taskComments:    map[int64]models.TaskComment{},
			syllabuses:      map[int64]models.Syllabus{},
			enrollments:     map[int64]models.Enrollment{},
			membershipTypes: map[int64]models.MembershipType{},
			memberships:     map[int64]models.Membership{},
		},
		fail: map[string]error{},
	}
}

func cloneMap[V any](m map[int64]V) map[int64]V {
	out := make(map[int64]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memState) clone() *memState {
	return &memState{
		seq:             s.seq,
		bookings:        cloneMap(s.bookings),
		aircraft:        cloneMap(s.aircraft),
		users:           cloneMap(s.users),
		invoices:        cloneMap(s.invoices),
		invoiceLines:    cloneMap(s.invoiceLines),
		payments:        cloneMap(s.payments),
		defects:         cloneMap(s.defects),
		flightTypes:     cloneMap(s.flightTypes),
		chargeables:     cloneMap(s.chargeables),
		lessons:         cloneMap(s.lessons),
		debriefs:        cloneMap(s.debriefs),
		signouts:        cloneMap(s.signouts),
		tasks:           cloneMap(s.tasks),
		assignments:     cloneMap(s.assignments),
		taskComments:    cloneMap(s.taskComments),
		syllabuses:      cloneMap(s.syllabuses),
		enrollments:     cloneMap(s.enrollments),
		membershipTypes: cloneMap(s.membershipTypes),
		memberships:     cloneMap(s.memberships),
	}
}

func (m *memStore) nextID() int64 {
	m.st.seq++
	return m.st.seq
}

func (m *memStore) injected(op string) error {
	return m.fail[op]
}

func (m *memStore) InTx(ctx context.Context, fn func(r repositories.Repos) error) error {
	snapshot := m.st.clone()
	if err := fn(m); err != nil {
		m.st = snapshot
		return err
	}
	return nil
}

func (m *memStore) Bookings() repositories.BookingRepo  { return memBookings{m} }
func (m *memStore) Aircraft() repositories.AircraftRepo { return memAircraft{m} }
func (m *memStore) Users() repositories.UserRepo        { return memUsers{m} }
func (m *memStore) Invoices() repositories.InvoiceRepo  { return memInvoices{m} }
func (m *memStore) Payments() repositories.PaymentRepo  { return memPayments{m} }
func (m *memStore) Defects() repositories.DefectRepo    { return memDefects{m} }
func (m *memStore) Catalog() repositories.CatalogRepo   { return memCatalog{m} }
func (m *memStore) Debriefs() repositories.DebriefRepo  { return memDebriefs{m} }
func (m *memStore) Signouts() repositories.SignoutRepo  { return memSignouts{m} }
func (m *memStore) Tasks() repositories.TaskRepo        { return memTasks{m} }
func (m *memStore) Training() repositories.TrainingRepo { return memTraining{m} }

func notFound(resource string) error { return domain.NotFoundError{Resource: resource} }

func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// --- bookings

type memBookings struct{ m *memStore }

func (r memBookings) Create(ctx context.Context, b *models.Booking) error {
	if err := r.m.injected("bookings.create"); err != nil {
		return err
	}
	b.ID = r.m.nextID()
	r.m.st.bookings[b.ID] = *b
	return nil
}

func (r memBookings) Get(ctx context.Context, id int64) (models.Booking, error) {
	b, ok := r.m.st.bookings[id]
	if !ok {
		return models.Booking{}, notFound("booking")
	}
	return b, nil
}

func (r memBookings) GetForUpdate(ctx context.Context, id int64) (models.Booking, error) {
	return r.Get(ctx, id)
}

func (r memBookings) GetView(ctx context.Context, id int64) (models.BookingView, error) {
	b, err := r.Get(ctx, id)
	if err != nil {
		return models.BookingView{}, err
	}
	return r.view(b), nil
}

func (r memBookings) view(b models.Booking) models.BookingView {
	st := r.m.st
	v := models.BookingView{Booking: b}
	u := st.users[b.UserID]
	v.MemberName, v.MemberEmail = u.FullName(), u.Email
	if b.InstructorID != nil {
		name := st.users[*b.InstructorID].FullName()
		v.InstructorName = &name
	}
	a := st.aircraft[b.AircraftID]
	v.AircraftReg, v.AircraftType = a.Registration, a.Type
	v.FlightTypeName = st.flightTypes[b.FlightTypeID].Name
	if b.LessonID != nil {
		name := st.lessons[*b.LessonID].Name
		v.LessonName = &name
	}
	return v
}

func (r memBookings) List(ctx context.Context, f models.BookingFilter) ([]models.BookingView, error) {
	out := []models.BookingView{}
	for _, id := range sortedIDs(r.m.st.bookings) {
		b := r.m.st.bookings[id]
		if f.UserID != nil && b.UserID != *f.UserID {
			continue
		}
		if f.AircraftID != nil && b.AircraftID != *f.AircraftID {
			continue
		}
		if f.InstructorID != nil && (b.InstructorID == nil || *b.InstructorID != *f.InstructorID) {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.From != nil && b.EndTime.Before(*f.From) {
			continue
		}
		if f.To != nil && !b.StartTime.Before(*f.To) {
			continue
		}
		out = append(out, r.view(b))
	}
	return out, nil
}

func (r memBookings) Update(ctx context.Context, b models.Booking, expected models.BookingStatus) error {
	if err := r.m.injected("bookings.update"); err != nil {
		return err
	}
	cur, ok := r.m.st.bookings[b.ID]
	if !ok || cur.Status != expected {
		return domain.ConflictError{Resource: "booking", Msg: "status changed"}
	}
	r.m.st.bookings[b.ID] = b
	return nil
}

// --- aircraft

type memAircraft struct{ m *memStore }

func (r memAircraft) Create(ctx context.Context, a *models.Aircraft) error {
	a.ID = r.m.nextID()
	r.m.st.aircraft[a.ID] = *a
	return nil
}

func (r memAircraft) Get(ctx context.Context, id int64) (models.Aircraft, error) {
	a, ok := r.m.st.aircraft[id]
	if !ok {
		return models.Aircraft{}, notFound("aircraft")
	}
	return a, nil
}

func (r memAircraft) GetForUpdate(ctx context.Context, id int64) (models.Aircraft, error) {
	return r.Get(ctx, id)
}

func (r memAircraft) List(ctx context.Context) ([]models.Aircraft, error) {
	out := []models.Aircraft{}
	for _, id := range sortedIDs(r.m.st.aircraft) {
		out = append(out, r.m.st.aircraft[id])
	}
	return out, nil
}

func (r memAircraft) Update(ctx context.Context, a models.Aircraft) error {
	cur, ok := r.m.st.aircraft[a.ID]
	if !ok {
		return notFound("aircraft")
	}
	a.CurrentTacho, a.CurrentHobbs = cur.CurrentTacho, cur.CurrentHobbs
	r.m.st.aircraft[a.ID] = a
	return nil
}

func (r memAircraft) UpdateMeters(ctx context.Context, id int64, prev, next models.MeterReadings) error {
	if err := r.m.injected("aircraft.update_meters"); err != nil {
		return err
	}
	a, ok := r.m.st.aircraft[id]
	if !ok || !a.CurrentTacho.Equal(prev.Tacho) || !a.CurrentHobbs.Equal(prev.Hobbs) {
		return domain.ConflictError{Resource: "aircraft", Msg: "meter readings changed"}
	}
	a.CurrentTacho, a.CurrentHobbs = next.Tacho, next.Hobbs
	r.m.st.aircraft[id] = a
	return nil
}

// --- users

type memUsers struct{ m *memStore }

func (r memUsers) Create(ctx context.Context, u *models.User) error {
	for _, existing := range r.m.st.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ConflictError{Resource: "user", Msg: "user already exists"}
		}
	}
	u.ID = r.m.nextID()
	r.m.st.users[u.ID] = *u
	return nil
}

func (r memUsers) Get(ctx context.Context, id int64) (models.User, error) {
	u, ok := r.m.st.users[id]
	if !ok {
		return models.User{}, notFound("user")
	}
	return u, nil
}

func (r memUsers) GetForUpdate(ctx context.Context, id int64) (models.User, error) {
	return r.Get(ctx, id)
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (models.User, error) {
	for _, id := range sortedIDs(r.m.st.users) {
		if u := r.m.st.users[id]; strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return models.User{}, notFound("user")
}

func (r memUsers) List(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	out := []models.User{}
	for _, id := range sortedIDs(r.m.st.users) {
		u := r.m.st.users[id]
		if f.MembersOnly && !u.IsMember {
			continue
		}
		if f.StaffOnly && !u.IsStaff {
			continue
		}
		if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" &&
			!strings.Contains(strings.ToLower(u.FullName()+" "+u.Email), q) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r memUsers) Update(ctx context.Context, u models.User) error {
	cur, ok := r.m.st.users[u.ID]
	if !ok {
		return notFound("user")
	}
	u.CreditBalance = cur.CreditBalance
	r.m.st.users[u.ID] = u
	return nil
}

func (r memUsers) AdjustCredit(ctx context.Context, id int64, delta decimal.Decimal) error {
	if err := r.m.injected("users.adjust_credit"); err != nil {
		return err
	}
	u, ok := r.m.st.users[id]
	if !ok || u.CreditBalance.Add(delta).IsNegative() {
		return domain.ConflictError{Resource: "user", Msg: "insufficient credit balance"}
	}
	u.CreditBalance = u.CreditBalance.Add(delta)
	r.m.st.users[id] = u
	return nil
}

// --- invoices and payments

type memInvoices struct{ m *memStore }

func (r memInvoices) Create(ctx context.Context, inv *models.Invoice) error {
	if err := r.m.injected("invoices.create"); err != nil {
		return err
	}
	for _, existing := range r.m.st.invoices {
		if existing.InvoiceNumber == inv.InvoiceNumber {
			return domain.ConflictError{Resource: "invoice", Msg: "invoice already exists"}
		}
	}
	inv.ID = r.m.nextID()
	r.m.st.invoices[inv.ID] = *inv
	return nil
}

func (r memInvoices) Get(ctx context.Context, id int64) (models.Invoice, error) {
	inv, ok := r.m.st.invoices[id]
	if !ok {
		return models.Invoice{}, notFound("invoice")
	}
	return inv, nil
}

func (r memInvoices) GetForUpdate(ctx context.Context, id int64) (models.Invoice, error) {
	return r.Get(ctx, id)
}

func (r memInvoices) GetByBooking(ctx context.Context, bookingID int64) (models.Invoice, error) {
	ids := sortedIDs(r.m.st.invoices)
	for i := len(ids) - 1; i >= 0; i-- {
		inv := r.m.st.invoices[ids[i]]
		if inv.BookingID != nil && *inv.BookingID == bookingID && inv.Status != models.InvoiceCancelled {
			return inv, nil
		}
	}
	return models.Invoice{}, notFound("invoice")
}

func (r memInvoices) List(ctx context.Context, f models.InvoiceFilter) ([]models.Invoice, error) {
	out := []models.Invoice{}
	for _, id := range sortedIDs(r.m.st.invoices) {
		inv := r.m.st.invoices[id]
		if f.UserID != nil && inv.UserID != *f.UserID {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r memInvoices) UpdateStatus(ctx context.Context, id int64, status models.InvoiceStatus) error {
	inv, ok := r.m.st.invoices[id]
	if !ok {
		return notFound("invoice")
	}
	inv.Status = status
	r.m.st.invoices[id] = inv
	return nil
}

func (r memInvoices) AddChargeables(ctx context.Context, rows []models.InvoiceChargeable) error {
	for _, row := range rows {
		row.ID = r.m.nextID()
		r.m.st.invoiceLines[row.ID] = row
	}
	return nil
}

type memPayments struct{ m *memStore }

func (r memPayments) Create(ctx context.Context, p *models.Payment) error {
	if err := r.m.injected("payments.create." + string(p.PaymentMethod)); err != nil {
		return err
	}
	p.ID = r.m.nextID()
	r.m.st.payments[p.ID] = *p
	return nil
}

func (r memPayments) ListByInvoice(ctx context.Context, invoiceID int64) ([]models.Payment, error) {
	out := []models.Payment{}
	for _, id := range sortedIDs(r.m.st.payments) {
		if p := r.m.st.payments[id]; p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- defects

type memDefects struct{ m *memStore }

func (r memDefects) Create(ctx context.Context, d *models.Defect) error {
	d.ID = r.m.nextID()
	if d.Comments == nil {
		d.Comments = models.JSONList[models.DefectComment]{}
	}
	r.m.st.defects[d.ID] = *d
	return nil
}

func (r memDefects) Get(ctx context.Context, id int64) (models.Defect, error) {
	d, ok := r.m.st.defects[id]
	if !ok {
		return models.Defect{}, notFound("defect")
	}
	return d, nil
}

func (r memDefects) List(ctx context.Context, f models.DefectFilter) ([]models.Defect, error) {
	out := []models.Defect{}
	for _, id := range sortedIDs(r.m.st.defects) {
		d := r.m.st.defects[id]
		if f.AircraftID != nil && d.AircraftID != *f.AircraftID {
			continue
		}
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r memDefects) UpdateStatus(ctx context.Context, id int64, status models.DefectStatus) error {
	d, ok := r.m.st.defects[id]
	if !ok {
		return notFound("defect")
	}
	d.Status = status
	r.m.st.defects[id] = d
	return nil
}

func (r memDefects) AppendComment(ctx context.Context, id int64, c models.DefectComment) error {
	d, ok := r.m.st.defects[id]
	if !ok {
		return notFound("defect")
	}
	comments := append(models.JSONList[models.DefectComment]{}, d.Comments...)
	d.Comments = append(comments, c)
	r.m.st.defects[id] = d
	return nil
}

// --- catalog

type memCatalog struct{ m *memStore }

func (r memCatalog) GetFlightType(ctx context.Context, id int64) (models.FlightType, error) {
	ft, ok := r.m.st.flightTypes[id]
	if !ok {
		return models.FlightType{}, notFound("flight type")
	}
	return ft, nil
}

func (r memCatalog) ListFlightTypes(ctx context.Context) ([]models.FlightType, error) {
	out := []models.FlightType{}
	for _, id := range sortedIDs(r.m.st.flightTypes) {
		out = append(out, r.m.st.flightTypes[id])
	}
	return out, nil
}

func (r memCatalog) CreateFlightType(ctx context.Context, ft *models.FlightType) error {
	ft.ID = r.m.nextID()
	r.m.st.flightTypes[ft.ID] = *ft
	return nil
}

func (r memCatalog) GetChargeable(ctx context.Context, id int64) (models.Chargeable, error) {
	c, ok := r.m.st.chargeables[id]
	if !ok {
		return models.Chargeable{}, notFound("chargeable")
	}
	return c, nil
}

func (r memCatalog) ListChargeables(ctx context.Context) ([]models.Chargeable, error) {
	out := []models.Chargeable{}
	for _, id := range sortedIDs(r.m.st.chargeables) {
		out = append(out, r.m.st.chargeables[id])
	}
	return out, nil
}

func (r memCatalog) CreateChargeable(ctx context.Context, c *models.Chargeable) error {
	c.ID = r.m.nextID()
	r.m.st.chargeables[c.ID] = *c
	return nil
}

func (r memCatalog) GetLesson(ctx context.Context, id int64) (models.Lesson, error) {
	l, ok := r.m.st.lessons[id]
	if !ok {
		return models.Lesson{}, notFound("lesson")
	}
	return l, nil
}

func (r memCatalog) ListLessons(ctx context.Context, syllabusID *int64) ([]models.Lesson, error) {
	out := []models.Lesson{}
	for _, id := range sortedIDs(r.m.st.lessons) {
		l := r.m.st.lessons[id]
		if syllabusID != nil && (l.SyllabusID == nil || *l.SyllabusID != *syllabusID) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r memCatalog) CreateLesson(ctx context.Context, l *models.Lesson) error {
	l.ID = r.m.nextID()
	r.m.st.lessons[l.ID] = *l
	return nil
}

// --- debriefs and signouts

type memDebriefs struct{ m *memStore }

func (r memDebriefs) Create(ctx context.Context, d *models.FlightDebrief) error {
	for _, existing := range r.m.st.debriefs {
		if existing.BookingID == d.BookingID {
			return domain.ConflictError{Resource: "debrief", Msg: "debrief already exists"}
		}
	}
	d.ID = r.m.nextID()
	r.m.st.debriefs[d.ID] = *d
	return nil
}

func (r memDebriefs) GetByBooking(ctx context.Context, bookingID int64) (models.FlightDebrief, error) {
	for _, d := range r.m.st.debriefs {
		if d.BookingID == bookingID {
			return d, nil
		}
	}
	return models.FlightDebrief{}, notFound("debrief")
}

type memSignouts struct{ m *memStore }

func (r memSignouts) Create(ctx context.Context, s *models.SoloSignout) error {
	s.ID = r.m.nextID()
	r.m.st.signouts[s.ID] = *s
	return nil
}

func (r memSignouts) GetForUpdate(ctx context.Context, id int64) (models.SoloSignout, error) {
	s, ok := r.m.st.signouts[id]
	if !ok {
		return models.SoloSignout{}, notFound("solo signout")
	}
	return s, nil
}

func (r memSignouts) LatestForBooking(ctx context.Context, bookingID int64) (models.SoloSignout, error) {
	ids := sortedIDs(r.m.st.signouts)
	for i := len(ids) - 1; i >= 0; i-- {
		if s := r.m.st.signouts[ids[i]]; s.BookingID == bookingID {
			return s, nil
		}
	}
	return models.SoloSignout{}, notFound("solo signout")
}

func (r memSignouts) Review(ctx context.Context, s models.SoloSignout) error {
	cur, ok := r.m.st.signouts[s.ID]
	if !ok || cur.Status != models.SignoutPending {
		return domain.ConflictError{Resource: "solo signout", Msg: "signout already reviewed"}
	}
	r.m.st.signouts[s.ID] = s
	return nil
}

// --- tasks

type memTasks struct{ m *memStore }

func (r memTasks) Create(ctx context.Context, t *models.Task) error {
	t.ID = r.m.nextID()
	r.m.st.tasks[t.ID] = *t
	return nil
}

func (r memTasks) Get(ctx context.Context, id int64) (models.Task, error) {
	t, ok := r.m.st.tasks[id]
	if !ok {
		return models.Task{}, notFound("task")
	}
	return t, nil
}

func (r memTasks) List(ctx context.Context, f models.TaskFilter) ([]models.Task, error) {
	out := []models.Task{}
	for _, id := range sortedIDs(r.m.st.tasks) {
		t := r.m.st.tasks[id]
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.AssigneeID != nil {
			assigned := false
			for _, a := range r.m.st.assignments {
				if a.TaskID == id && a.UserID == *f.AssigneeID {
					assigned = true
				}
			}
			if !assigned {
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

func (r memTasks) UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) error {
	t, ok := r.m.st.tasks[id]
	if !ok {
		return notFound("task")
	}
	t.Status = status
	r.m.st.tasks[id] = t
	return nil
}

func (r memTasks) Assign(ctx context.Context, a *models.TaskAssignment) error {
	for _, existing := range r.m.st.assignments {
		if existing.TaskID == a.TaskID && existing.UserID == a.UserID {
			return domain.ConflictError{Resource: "task assignment", Msg: "task assignment already exists"}
		}
	}
	a.ID = r.m.nextID()
	r.m.st.assignments[a.ID] = *a
	return nil
}

func (r memTasks) ListAssignments(ctx context.Context, taskID int64) ([]models.TaskAssignment, error) {
	out := []models.TaskAssignment{}
	for _, id := range sortedIDs(r.m.st.assignments) {
		if a := r.m.st.assignments[id]; a.TaskID == taskID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memTasks) AddComment(ctx context.Context, c *models.TaskComment) error {
	c.ID = r.m.nextID()
	r.m.st.taskComments[c.ID] = *c
	return nil
}

func (r memTasks) ListComments(ctx context.Context, taskID int64) ([]models.TaskComment, error) {
	out := []models.TaskComment{}
	for _, id := range sortedIDs(r.m.st.taskComments) {
		if c := r.m.st.taskComments[id]; c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

// --- training

type memTraining struct{ m *memStore }

func (r memTraining) ListSyllabuses(ctx context.Context) ([]models.Syllabus, error) {
	out := []models.Syllabus{}
	for _, id := range sortedIDs(r.m.st.syllabuses) {
		out = append(out, r.m.st.syllabuses[id])
	}
	return out, nil
}

func (r memTraining) GetSyllabus(ctx context.Context, id int64) (models.Syllabus, error) {
	s, ok := r.m.st.syllabuses[id]
	if !ok {
		return models.Syllabus{}, notFound("syllabus")
	}
	return s, nil
}

func (r memTraining) CreateSyllabus(ctx context.Context, s *models.Syllabus) error {
	s.ID = r.m.nextID()
	r.m.st.syllabuses[s.ID] = *s
	return nil
}

func (r memTraining) Enroll(ctx context.Context, e *models.Enrollment) error {
	for _, existing := range r.m.st.enrollments {
		if existing.UserID == e.UserID && existing.SyllabusID == e.SyllabusID {
			return domain.ConflictError{Resource: "enrollment", Msg: "enrollment already exists"}
		}
	}
	e.ID = r.m.nextID()
	if e.Status == "" {
		e.Status = "active"
	}
	r.m.st.enrollments[e.ID] = *e
	return nil
}

func (r memTraining) ListEnrollments(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	out := []models.Enrollment{}
	for _, id := range sortedIDs(r.m.st.enrollments) {
		if e := r.m.st.enrollments[id]; e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r memTraining) ListMembershipTypes(ctx context.Context) ([]models.MembershipType, error) {
	out := []models.MembershipType{}
	for _, id := range sortedIDs(r.m.st.membershipTypes) {
		out = append(out, r.m.st.membershipTypes[id])
	}
	return out, nil
}

func (r memTraining) GetMembershipType(ctx context.Context, id int64) (models.MembershipType, error) {
	mt, ok := r.m.st.membershipTypes[id]
	if !ok {
		return models.MembershipType{}, notFound("membership type")
	}
	return mt, nil
}

func (r memTraining) CreateMembershipType(ctx context.Context, mt *models.MembershipType) error {
	mt.ID = r.m.nextID()
	r.m.st.membershipTypes[mt.ID] = *mt
	return nil
}

func (r memTraining) CreateMembership(ctx context.Context, m *models.Membership) error {
	m.ID = r.m.nextID()
	r.m.st.memberships[m.ID] = *m
	return nil
}

func (r memTraining) ListMemberships(ctx context.Context, userID int64) ([]models.Membership, error) {
	out := []models.Membership{}
	for _, id := range sortedIDs(r.m.st.memberships) {
		if m := r.m.st.memberships[id]; m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}
