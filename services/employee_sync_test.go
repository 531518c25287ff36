package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-pos/models"
)

func stubStaff(env *testEnv) {
	env.remote.data(http.MethodGet, "/roles/S1", []map[string]interface{}{
		{"id": "r1", "name": "Admin", "storeId": "S1", "userManagement": true},
		{"id": "r2", "name": "Waiter", "storeId": "S1", "orderManagement": true},
	})
	env.remote.data(http.MethodGet, "/employees/S1", []map[string]interface{}{
		{"id": "e1", "firstName": "Ana", "lastName": "Lopez", "email": "ana@pos.test", "roleId": "r1", "storeId": "S1"},
		{"id": "e2", "firstName": "Ben", "lastName": "", "email": "ben@pos.test", "roleId": "r2", "storeId": "S1"},
		{"id": "e3", "firstName": "Cy", "lastName": "Ng", "email": "cy@pos.test", "roleId": "gone", "storeId": "S1"},
	})
}

func TestGetEmployeesByStoreBuildsViews(t *testing.T) {
	env := newTestEnv(t, true)
	stubStaff(env)

	views, err := env.svc.GetEmployeesByStore(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, views, 3)

	byID := map[string]models.EmployeeView{}
	for _, v := range views {
		byID[v.ID] = v
	}
	assert.Equal(t, "Ana Lopez", byID["e1"].Name)
	assert.Equal(t, "Admin", byID["e1"].Role)
	assert.True(t, byID["e1"].IsAdmin)
	assert.Equal(t, "Ben", byID["e2"].Name)
	assert.False(t, byID["e2"].IsAdmin)
	assert.Equal(t, "Unknown Role", byID["e3"].Role)

	_, err = env.svc.GetEmployeesByStore(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, 1, env.remote.hitCount(http.MethodGet, "/roles/S1"))
	assert.Equal(t, 1, env.remote.hitCount(http.MethodGet, "/employees/S1"))
}

func TestGetEmployeesByStoreNeedsRoles(t *testing.T) {
	env := newTestEnv(t, true)
	env.remote.on(http.MethodGet, "/roles/S1", http.StatusInternalServerError, map[string]string{"message": "boom"})
	env.remote.data(http.MethodGet, "/employees/S1", []map[string]interface{}{{"id": "e1", "firstName": "Ana"}})

	views, err := env.svc.GetEmployeesByStore(context.Background(), "S1")
	require.Error(t, err)
	assert.Empty(t, views)
	assert.Equal(t, 0, env.remote.hitCount(http.MethodGet, "/employees/S1"))
}

func TestGetEmployeesCarriesRoleName(t *testing.T) {
	env := newTestEnv(t, true)
	stubStaff(env)

	records, err := env.svc.GetEmployees(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, r := range records {
		if r.ID == "e2" {
			require.NotNil(t, r.RoleName)
			assert.Equal(t, "Waiter", *r.RoleName)
		}
		if r.ID == "e3" {
			assert.Nil(t, r.RoleName)
		}
	}
}

func TestGetRolesStoresCapabilityFlags(t *testing.T) {
	env := newTestEnv(t, true)
	stubStaff(env)

	roles, err := env.svc.GetRoles(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "Admin", roles[0].Name)
	assert.True(t, roles[0].UserManagement)
	assert.False(t, roles[0].OrderManagement)
	assert.True(t, roles[1].OrderManagement)
}

func TestEmployeeLoginStoresSession(t *testing.T) {
	env := newTestEnv(t, true)
	identity := map[string]interface{}{"id": "e1", "firstName": "Ana", "token": "t0k"}
	env.remote.data(http.MethodPost, "/employee/login", identity)

	res := env.svc.EmployeeLogin(context.Background(), "ana@pos.test", "1234")
	require.True(t, res.Success, res.Message)

	var sent map[string]string
	require.NoError(t, json.Unmarshal(env.remote.lastBody(http.MethodPost, "/employee/login"), &sent))
	assert.Equal(t, map[string]string{"email": "ana@pos.test", "pin": "1234"}, sent)

	stored, err := env.session.Get()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"e1","firstName":"Ana","token":"t0k"}`, string(stored))

	data := env.svc.GetEmployeeData()
	assert.True(t, data.Success)
	assert.Contains(t, env.events.names(), EventSessionChanged)
}

func TestEmployeeLoginRejectedLeavesSessionUntouched(t *testing.T) {
	env := newTestEnv(t, true)
	env.remote.on(http.MethodPost, "/employee/login", http.StatusUnauthorized, map[string]string{"message": "Invalid PIN"})

	res := env.svc.EmployeeLogin(context.Background(), "ana@pos.test", "9999")

	assert.False(t, res.Success)
	assert.Equal(t, "Invalid PIN", res.Message)
	stored, err := env.session.Get()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestEmployeeLoginFallbackMessage(t *testing.T) {
	env := newTestEnv(t, true)
	env.remote.on(http.MethodPost, "/employee/login", http.StatusInternalServerError, map[string]string{})

	res := env.svc.EmployeeLogin(context.Background(), "ana@pos.test", "1234")

	assert.False(t, res.Success)
	assert.Equal(t, "An error occurred during login.", res.Message)
}

func TestEmployeeLoginValidation(t *testing.T) {
	env := newTestEnv(t, true)

	cases := []struct {
		email, pin, message string
	}{
		{"", "1234", "Email and PIN are required"},
		{"ana@pos.test", "", "Email and PIN are required"},
		{"not-an-email", "1234", "Invalid email or PIN format"},
		{"ana@pos.test", "12ab", "Invalid email or PIN format"},
		{"ana@pos.test", "12", "Invalid email or PIN format"},
		{"ana@pos.test", "-123", "Invalid email or PIN format"},
		{"ana@pos.test", "12.5", "Invalid email or PIN format"},
		{"ana@pos.test", "+1234", "Invalid email or PIN format"},
	}
	for _, tc := range cases {
		res := env.svc.EmployeeLogin(context.Background(), tc.email, tc.pin)
		assert.False(t, res.Success)
		assert.Equal(t, tc.message, res.Message)
		assert.Equal(t, KindValidation, res.Err.Kind)
	}
	assert.Equal(t, 0, env.remote.total())
}

func TestLogoutClearsSession(t *testing.T) {
	env := newTestEnv(t, true)
	require.NoError(t, env.session.Set(json.RawMessage(`{"id":"e1"}`)))

	res := env.svc.LogoutEmployee()
	assert.True(t, res.Success)

	data := env.svc.GetEmployeeData()
	assert.False(t, data.Success)
	assert.Equal(t, KindSession, data.Err.Kind)
}

func TestGetProfileIsLocalOnly(t *testing.T) {
	env := newTestEnv(t, true)

	res := env.svc.GetProfile(context.Background(), "e1")
	assert.False(t, res.Success)
	assert.Equal(t, "Employee not found locally", res.Message)
	assert.Equal(t, 0, env.remote.total())

	roleID := "r1"
	require.NoError(t, env.db.Create(&models.Store{ID: "S1", Name: "Main Street"}).Error)
	require.NoError(t, env.db.Create(&models.Role{ID: "r1", Name: "Admin", StoreID: "S1"}).Error)
	require.NoError(t, env.db.Create(&models.Employee{ID: "e1", StoreID: "S1", FirstName: "Ana", LastName: "Lopez", RoleID: &roleID}).Error)

	res = env.svc.GetProfile(context.Background(), "e1")
	require.True(t, res.Success)
	profile, ok := res.Data.(models.ProfileView)
	require.True(t, ok)
	assert.Equal(t, "Ana Lopez", profile.Name)
	assert.Equal(t, "Admin", *profile.RoleName)
	assert.Equal(t, "Main Street", *profile.StoreName)
}

func TestSyncEmployeesRequiresConnectivity(t *testing.T) {
	env := newTestEnv(t, false)
	stubStaff(env)

	res := env.svc.SyncEmployees(context.Background(), "S1")
	assert.False(t, res.Success)
	assert.Equal(t, KindOffline, res.Err.Kind)
	assert.Equal(t, 0, env.remote.total())
}

func TestSyncEmployeesOverwritesCache(t *testing.T) {
	env := newTestEnv(t, true)
	stubStaff(env)
	_, err := env.svc.GetEmployeesByStore(context.Background(), "S1")
	require.NoError(t, err)

	env.remote.data(http.MethodGet, "/employees/S1", []map[string]interface{}{
		{"id": "e1", "firstName": "Ana", "lastName": "Silva", "email": "ana@pos.test", "roleId": "r1", "storeId": "S1"},
	})

	res := env.svc.SyncEmployees(context.Background(), "S1")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Synced 1 employees", res.Message)

	var e models.Employee
	require.NoError(t, env.db.First(&e, "id = ?", "e1").Error)
	assert.Equal(t, "Silva", e.LastName)

	views, ok := res.Data.([]models.EmployeeView)
	require.True(t, ok)
	assert.Len(t, views, 3)
}
