package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartrent-http-service/internal/domain/models"
)

func userFixture(t *testing.T) InterfaceUserService {
	t.Helper()
	return NewUserService(newTestDB(t), testConfig(), nil)
}

func TestRegisterLandlord(t *testing.T) {
	svc := userFixture(t)

	user, err := svc.RegisterLandlord(RegisterInput{
		Email:     "Jane@Example.com",
		Password:  "landlord-pass",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.RoleLandlord, user.Role)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Nil(t, user.LandlordID)
	// the stored password is a hash, never the plaintext
	assert.NotEqual(t, "landlord-pass", user.Password)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := userFixture(t)

	input := RegisterInput{Email: "jane@example.com", Password: "landlord-pass"}
	_, err := svc.RegisterLandlord(input)
	require.NoError(t, err)

	_, err = svc.RegisterLandlord(input)
	assert.ErrorIs(t, err, ErrEmailTaken)

	// case variations collide too
	input.Email = "JANE@example.com"
	_, err = svc.RegisterLandlord(input)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc := userFixture(t)

	_, err := svc.RegisterLandlord(RegisterInput{Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RegisterLandlord(RegisterInput{Email: "jane@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateTenantScopesLandlord(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig(), nil)
	landlord := seedLandlord(t, db, "owner@example.com")

	tenant, err := svc.CreateTenant(landlord.ID, RegisterInput{
		Email:    "renter@example.com",
		Password: "tenant-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleTenant, tenant.Role)
	require.NotNil(t, tenant.LandlordID)
	assert.Equal(t, landlord.ID, *tenant.LandlordID)
}

func TestAuthenticate(t *testing.T) {
	svc := userFixture(t)

	_, err := svc.RegisterLandlord(RegisterInput{Email: "jane@example.com", Password: "landlord-pass"})
	require.NoError(t, err)

	user, err := svc.Authenticate("jane@example.com", "landlord-pass")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)

	_, err = svc.Authenticate("jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	// unknown accounts fail the same way as bad passwords
	_, err = svc.Authenticate("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestUpdateProfileWhitelist(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig(), nil)
	landlord := seedLandlord(t, db, "owner@example.com")

	updated, err := svc.UpdateProfile(landlord.ID, map[string]interface{}{
		"first_name": "Updated",
		"role":       models.RoleAdmin,
		"email":      "hijack@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "Updated", updated.FirstName)
	assert.Equal(t, models.RoleLandlord, updated.Role)
	assert.Equal(t, "owner@example.com", updated.Email)

	_, err = svc.UpdateProfile(landlord.ID, map[string]interface{}{"role": models.RoleAdmin})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListTenants(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig(), nil)
	landlord := seedLandlord(t, db, "owner@example.com")
	other := seedLandlord(t, db, "other@example.com")
	seedTenant(t, db, "a@example.com", landlord.ID)
	seedTenant(t, db, "b@example.com", landlord.ID)
	seedTenant(t, db, "c@example.com", other.ID)

	tenants, err := svc.ListTenants(landlord.ID)
	require.NoError(t, err)
	assert.Len(t, tenants, 2)
}

func TestLinkFederatedCreatesLandlord(t *testing.T) {
	svc := userFixture(t)

	user, err := svc.LinkFederated(&FederatedIdentity{
		Subject: "provider-subject-1",
		Email:   "Fed@Example.com",
		Name:    "Fede Rated User",
	})
	require.NoError(t, err)

	assert.Equal(t, "provider-subject-1", user.ID)
	assert.Equal(t, models.RoleLandlord, user.Role)
	assert.Equal(t, "fed@example.com", user.Email)
	assert.Equal(t, "Fede", user.FirstName)
	assert.Equal(t, "Rated User", user.LastName)
	require.NotNil(t, user.FederatedUID)
	assert.Equal(t, "provider-subject-1", *user.FederatedUID)
}

func TestLinkFederatedAttachesToExistingAccount(t *testing.T) {
	svc := userFixture(t)

	existing, err := svc.RegisterLandlord(RegisterInput{Email: "jane@example.com", Password: "landlord-pass"})
	require.NoError(t, err)

	linked, err := svc.LinkFederated(&FederatedIdentity{
		Subject: "provider-subject-2",
		Email:   "jane@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, linked.ID)
	require.NotNil(t, linked.FederatedUID)
	assert.Equal(t, "provider-subject-2", *linked.FederatedUID)

	// linking is idempotent; a second login keeps the original uid
	again, err := svc.LinkFederated(&FederatedIdentity{
		Subject: "provider-subject-3",
		Email:   "jane@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "provider-subject-2", *again.FederatedUID)
}

func TestLinkFederatedRequiresEmail(t *testing.T) {
	svc := userFixture(t)

	_, err := svc.LinkFederated(&FederatedIdentity{Subject: "provider-subject-4"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
