package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tomasdma/donation-platform/internal/constants"
	"github.com/tomasdma/donation-platform/internal/database"
	"github.com/tomasdma/donation-platform/internal/models"
	"github.com/tomasdma/donation-platform/internal/token"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type gateTestEnv struct {
	db    *gorm.DB
	codec *token.Codec
}

func setupGateTestEnv(t *testing.T) gateTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.CompanyType{},
		&models.Company{},
		&models.Permission{},
		&models.CompanyRole{},
		&models.Membership{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return gateTestEnv{
		db:    db,
		codec: token.NewCodec("gate-test-secret", time.Hour),
	}
}

func (env gateTestEnv) router() *gin.Engine {
	r := gin.New()
	api := r.Group("/api")
	api.Use(Authenticate(env.codec))
	api.GET("/protected", RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/gated", RequirePermission(constants.PermAddEmployee), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func (env gateTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "User",
		Enabled:      true,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

// createCompanyWithRole inserts a company plus a role carrying the
// given permissions, returning the role.
func (env gateTestEnv) createCompanyWithRole(t *testing.T, name string, permNames ...string) *models.CompanyRole {
	t.Helper()

	ct := &models.CompanyType{Name: "Charity " + name}
	require.NoError(t, env.db.Create(ct).Error)

	company := &models.Company{
		Name:               name,
		RegistrationNumber: "reg-" + name,
		TaxID:              "tax-" + name,
		CompanyTypeID:      ct.ID,
		Status:             models.CompanyStatusApproved,
	}
	require.NoError(t, env.db.Create(company).Error)

	var permissions []models.Permission
	for _, pn := range permNames {
		p := models.Permission{Name: pn, Type: models.PermissionTypeEmployee}
		require.NoError(t, env.db.Create(&p).Error)
		permissions = append(permissions, p)
	}

	role := &models.CompanyRole{
		Name:        "Staff",
		CompanyID:   company.ID,
		Permissions: permissions,
	}
	require.NoError(t, env.db.Create(role).Error)
	return role
}

func (env gateTestEnv) addMember(t *testing.T, userID uint64, role *models.CompanyRole) {
	t.Helper()
	require.NoError(t, env.db.Create(&models.Membership{
		UserID:    userID,
		CompanyID: role.CompanyID,
		RoleID:    role.ID,
	}).Error)
}

func doGet(r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_MissingTokenRejectedOnProtectedRoute(t *testing.T) {
	env := setupGateTestEnv(t)
	r := env.router()

	w := doGet(r, "/api/protected", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_ExpiredTokenTreatedAsAnonymous(t *testing.T) {
	env := setupGateTestEnv(t)
	env.createUser(t, "alice")

	expiredCodec := token.NewCodec("gate-test-secret", -time.Minute)
	expired, err := expiredCodec.Issue("alice", nil)
	require.NoError(t, err)

	w := doGet(env.router(), "/api/protected", expired)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_TokenSignedWithOtherKeyTreatedAsAnonymous(t *testing.T) {
	env := setupGateTestEnv(t)
	env.createUser(t, "alice")

	forged, err := token.NewCodec("some-other-secret", time.Hour).Issue("alice", nil)
	require.NoError(t, err)

	w := doGet(env.router(), "/api/protected", forged)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_ValidTokenEstablishesIdentity(t *testing.T) {
	env := setupGateTestEnv(t)
	env.createUser(t, "alice")

	raw, err := env.codec.Issue("alice", nil)
	require.NoError(t, err)

	w := doGet(env.router(), "/api/protected", raw)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticate_DisabledUserTreatedAsAnonymous(t *testing.T) {
	env := setupGateTestEnv(t)
	user := env.createUser(t, "alice")

	raw, err := env.codec.Issue("alice", nil)
	require.NoError(t, err)

	require.NoError(t, env.db.Model(user).Update("enabled", false).Error)

	w := doGet(env.router(), "/api/protected", raw)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// An authenticated user without the required permission gets a 403,
// never a 401: the two failures stay distinguishable to clients.
func TestRequirePermission_AuthenticatedWithoutPermissionGets403(t *testing.T) {
	env := setupGateTestEnv(t)
	user := env.createUser(t, "bob")
	role := env.createCompanyWithRole(t, "acme")
	env.addMember(t, user.ID, role)

	raw, err := env.codec.Issue("bob", nil)
	require.NoError(t, err)

	w := doGet(env.router(), "/api/gated", raw)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermission_AnonymousGets401(t *testing.T) {
	env := setupGateTestEnv(t)

	w := doGet(env.router(), "/api/gated", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequirePermission_MemberWithPermissionGets200(t *testing.T) {
	env := setupGateTestEnv(t)
	user := env.createUser(t, "carol")
	role := env.createCompanyWithRole(t, "acme", constants.PermAddEmployee)
	env.addMember(t, user.ID, role)

	raw, err := env.codec.Issue("carol", nil)
	require.NoError(t, err)

	w := doGet(env.router(), "/api/gated", raw)
	require.Equal(t, http.StatusOK, w.Code)
}

// Authorization reads the membership on every request, so a token
// issued before a membership change carries no stale authority.
func TestRequirePermission_MembershipChangeOutlivesToken(t *testing.T) {
	env := setupGateTestEnv(t)
	user := env.createUser(t, "dave")
	granted := env.createCompanyWithRole(t, "acme", constants.PermAddEmployee)
	env.addMember(t, user.ID, granted)

	raw, err := env.codec.Issue("dave", nil)
	require.NoError(t, err)

	r := env.router()
	require.Equal(t, http.StatusOK, doGet(r, "/api/gated", raw).Code)

	// Move the user to a role without the permission. The same token
	// must now be refused.
	bare := env.createCompanyWithRole(t, "globex")
	require.NoError(t, env.db.Where("user_id = ?", user.ID).Delete(&models.Membership{}).Error)
	env.addMember(t, user.ID, bare)

	require.Equal(t, http.StatusForbidden, doGet(r, "/api/gated", raw).Code)
}

func TestAuthenticate_PublicPathSkipsVerification(t *testing.T) {
	env := setupGateTestEnv(t)

	r := gin.New()
	api := r.Group("/api")
	api.Use(Authenticate(env.codec))
	api.POST("/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.Header.Set("Authorization", "Bearer not-even-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
