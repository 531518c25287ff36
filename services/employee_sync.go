package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	unknownRole        = "Unknown Role"
	loginFailedMsg     = "An error occurred during login."
	storeIDRequiredMsg = "Store ID is required"
)

type loginInput struct {
	Email string `validate:"required,email"`
	Pin   string `validate:"required,number,min=4,max=8"`
}

func (s *SyncService) rolesReader() ReadThrough[models.Role, models.Role] {
	return ReadThrough[models.Role, models.Role]{
		Entity:  "role",
		Present: anyRow[models.Role](s.db, "storeId"),
		Query: func(ctx context.Context, storeID string) ([]models.Role, error) {
			var roles []models.Role
			err := s.db.WithContext(ctx).Where(byStore(storeID)).Order("name").Find(&roles).Error
			return roles, err
		},
		Fetch: s.remote.FetchRoles,
		Persist: func(ctx context.Context, storeID string, roles []models.Role) error {
			for i := range roles {
				if roles[i].StoreID == "" {
					roles[i].StoreID = storeID
				}
			}
			return insertIgnore(ctx, s.db, "role", roles)
		},
		Enrich: same[models.Role],
		Filled: s.filled("role"),
	}
}

func (s *SyncService) GetRoles(ctx context.Context, storeID string) ([]models.Role, error) {
	if strings.TrimSpace(storeID) == "" {
		return []models.Role{}, newSyncError(KindValidation, "getRoles", storeIDRequiredMsg, nil)
	}
	return s.rolesReader().Load(ctx, storeID)
}

func (s *SyncService) queryEmployees(ctx context.Context, storeID string) ([]models.Employee, error) {
	var employees []models.Employee
	err := s.db.WithContext(ctx).
		Preload("Role").
		Where(byStore(storeID)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "firstName"}}).
		Find(&employees).Error
	return employees, err
}

func employeesReader[V any](s *SyncService, enrich func([]models.Employee) []V) ReadThrough[models.Employee, V] {
	return ReadThrough[models.Employee, V]{
		Entity:  "employee",
		Present: anyRow[models.Employee](s.db, "storeId"),
		Query:   s.queryEmployees,
		Fetch:   s.remote.FetchEmployees,
		Persist: func(ctx context.Context, storeID string, employees []models.Employee) error {
			for i := range employees {
				if employees[i].StoreID == "" {
					employees[i].StoreID = storeID
				}
			}
			return insertIgnore(ctx, s.db, "employee", employees)
		},
		Enrich: enrich,
		Filled: s.filled("employee"),
	}
}

// ensureRoles makes sure the store's roles are cached so employee rows can
// be joined to a role name.
func (s *SyncService) ensureRoles(ctx context.Context, storeID string) error {
	_, err := s.rolesReader().Load(ctx, storeID)
	if err != nil && KindOf(err) != KindPartialInsert {
		return err
	}
	return nil
}

func toEmployeeView(e models.Employee) models.EmployeeView {
	role := unknownRole
	if e.Role != nil && e.Role.Name != "" {
		role = e.Role.Name
	}
	view := models.EmployeeView{
		ID:        e.ID,
		Name:      e.FullName(),
		Role:      role,
		Image:     e.AvatarPath,
		IsAdmin:   e.Role.IsAdmin(),
		StoreID:   e.StoreID,
		Email:     e.Email,
		Phone:     e.Phone,
		Address:   e.Address,
		LastLogin: e.LastLogin,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		view.DeletedAt = &t
	}
	return view
}

func toEmployeeViews(employees []models.Employee) []models.EmployeeView {
	views := make([]models.EmployeeView, 0, len(employees))
	for _, e := range employees {
		views = append(views, toEmployeeView(e))
	}
	return views
}

func toEmployeeRecords(employees []models.Employee) []models.EmployeeRecord {
	records := make([]models.EmployeeRecord, 0, len(employees))
	for _, e := range employees {
		rec := models.EmployeeRecord{Employee: e}
		if e.Role != nil {
			name := e.Role.Name
			rec.RoleName = &name
		}
		records = append(records, rec)
	}
	return records
}

// GetEmployeesByStore returns the display list of a store's staff.
func (s *SyncService) GetEmployeesByStore(ctx context.Context, storeID string) ([]models.EmployeeView, error) {
	if strings.TrimSpace(storeID) == "" {
		return []models.EmployeeView{}, newSyncError(KindValidation, "getEmployeesByStore", storeIDRequiredMsg, nil)
	}
	if err := s.ensureRoles(ctx, storeID); err != nil {
		return []models.EmployeeView{}, err
	}
	return employeesReader(s, toEmployeeViews).Load(ctx, storeID)
}

// GetEmployees returns full employee rows with their role name.
func (s *SyncService) GetEmployees(ctx context.Context, storeID string) ([]models.EmployeeRecord, error) {
	if strings.TrimSpace(storeID) == "" {
		return []models.EmployeeRecord{}, newSyncError(KindValidation, "getEmployees", storeIDRequiredMsg, nil)
	}
	if err := s.ensureRoles(ctx, storeID); err != nil {
		return []models.EmployeeRecord{}, err
	}
	return employeesReader(s, toEmployeeRecords).Load(ctx, storeID)
}

// GetProfile reads one employee from the local cache only.
func (s *SyncService) GetProfile(ctx context.Context, employeeID string) Result {
	if strings.TrimSpace(employeeID) == "" {
		return failure(newSyncError(KindValidation, "getProfile", "Employee ID is required", nil))
	}

	var employee models.Employee
	err := s.db.WithContext(ctx).
		Preload("Role").
		Preload("Store").
		Where(map[string]interface{}{"id": employeeID}).
		First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return failure(newSyncError(KindNotFoundLocally, "getProfile", "Employee not found locally", nil))
	}
	if err != nil {
		return failure(newSyncError(KindStorage, "getProfile", "Failed to load profile", err))
	}

	profile := models.ProfileView{Employee: employee, Name: employee.FullName()}
	if employee.Role != nil {
		name := employee.Role.Name
		profile.RoleName = &name
	}
	if employee.Store != nil {
		name := employee.Store.Name
		profile.StoreName = &name
	}
	return Result{Success: true, ID: employee.ID, Message: "Profile loaded", Data: profile}
}

// GetEmployeeData returns the identity stored at login.
func (s *SyncService) GetEmployeeData() Result {
	data, err := s.session.Get()
	if err != nil {
		utils.ErrorLogger.Printf("Failed to read session: %v", err)
		return failure(newSyncError(KindSession, "getEmployeeData", "Failed to read session", err))
	}
	if len(data) == 0 {
		return failure(newSyncError(KindSession, "getEmployeeData", "No active session", nil))
	}
	return Result{Success: true, Message: "Session found", Data: data}
}

// EmployeeLogin authenticates against the remote. There is no offline login.
func (s *SyncService) EmployeeLogin(ctx context.Context, email, pin string) Result {
	input := loginInput{Email: strings.TrimSpace(email), Pin: strings.TrimSpace(pin)}
	if input.Email == "" || input.Pin == "" {
		return failure(newSyncError(KindValidation, "employeeLogin", "Email and PIN are required", nil))
	}
	if err := s.validate.Struct(input); err != nil {
		return failure(newSyncError(KindValidation, "employeeLogin", "Invalid email or PIN format", err))
	}

	data, err := s.remote.Login(ctx, input.Email, input.Pin)
	if err != nil {
		msg := loginFailedMsg
		var re *RemoteError
		if errors.As(err, &re) && re.Message != "" {
			msg = re.Message
		}
		utils.ErrorLogger.WithField("email", input.Email).Errorf("Login failed: %v", err)
		return failure(newSyncError(remoteKind(err), "employeeLogin", msg, err))
	}

	if err := s.session.Set(data); err != nil {
		return failure(newSyncError(KindSession, "employeeLogin", "Failed to save session", err))
	}

	utils.InfoLogger.WithField("email", input.Email).Info("Employee logged in")
	s.emit(EventSessionChanged, map[string]interface{}{"loggedIn": true})
	return Result{Success: true, Message: "Login successful", Data: data}
}

func (s *SyncService) LogoutEmployee() Result {
	if err := s.session.Clear(); err != nil {
		return failure(newSyncError(KindSession, "logoutEmployee", "Failed to clear session", err))
	}
	s.emit(EventSessionChanged, map[string]interface{}{"loggedIn": false})
	return Result{Success: true, Message: "Logged out successfully"}
}

// SyncEmployees refreshes a store's roles and employees from the remote,
// overwriting cached rows. Unlike the getters it needs connectivity.
func (s *SyncService) SyncEmployees(ctx context.Context, storeID string) Result {
	if strings.TrimSpace(storeID) == "" {
		return failure(newSyncError(KindValidation, "syncEmployees", storeIDRequiredMsg, nil))
	}
	if !s.probe.Reachable(ctx) {
		return failure(newSyncError(KindOffline, "syncEmployees", "No internet connection", nil))
	}

	if roles, err := s.remote.FetchRoles(ctx, storeID); err != nil {
		utils.ErrorLogger.WithField("scope", storeID).Errorf("Role refresh failed: %v", err)
	} else if err := upsertAll(ctx, s.db, storeID, roles, func(r *models.Role) *string { return &r.StoreID }); err != nil {
		utils.ErrorLogger.WithField("scope", storeID).Errorf("Role refresh failed: %v", err)
	}

	employees, err := s.remote.FetchEmployees(ctx, storeID)
	if err != nil {
		return failure(newSyncError(remoteKind(err), "syncEmployees", "Failed to fetch employees", err))
	}
	if err := upsertAll(ctx, s.db, storeID, employees, func(e *models.Employee) *string { return &e.StoreID }); err != nil {
		return failure(newSyncError(KindStorage, "syncEmployees", "Failed to store employees", err))
	}

	local, err := s.queryEmployees(ctx, storeID)
	if err != nil {
		return failure(newSyncError(KindStorage, "syncEmployees", "Failed to read employees", err))
	}
	s.filled("employee")(storeID, len(local))
	return Result{
		Success: true,
		Message: fmt.Sprintf("Synced %d employees", len(employees)),
		Data:    toEmployeeViews(local),
	}
}

// upsertAll overwrites cached rows with the remote copy in one transaction.
func upsertAll[M any](ctx context.Context, db *gorm.DB, storeID string, rows []M, storeField func(*M) *string) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		if f := storeField(&rows[i]); *f == "" {
			*f = storeID
		}
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).
			Omit(clause.Associations).
			Create(&rows).Error
	})
}
