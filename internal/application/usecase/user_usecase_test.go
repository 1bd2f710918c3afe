package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/application/usecase"
	"github.com/jhoicas/finanzas-api/internal/domain"
	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/testutil/memstore"
)

func newUserUseCase(t *testing.T) (*usecase.UserUseCase, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	require.NoError(t, store.Create(&entity.User{ID: testUserID, Email: "ana@example.com", Name: "Ana", Role: entity.RoleUser, Status: entity.UserStatusActive}))
	require.NoError(t, store.Create(&entity.User{ID: "u-2", Email: "beto@example.com", Name: "Beto", Role: entity.RoleAdmin, Status: entity.UserStatusActive}))
	return usecase.NewUserUseCase(store), store
}

func TestUpdateProfile_ActualizaSoloCamposEnviados(t *testing.T) {
	uc, _ := newUserUseCase(t)
	income := decimal.NewFromInt(75000)
	city := " Pune "
	size := 3

	out, err := uc.UpdateProfile(testUserID, dto.UpdateProfileRequest{MonthlyIncome: &income, City: &city, FamilySize: &size})
	require.NoError(t, err)
	assert.True(t, out.Profile.MonthlyIncome.Equal(income))
	assert.Equal(t, "Pune", out.Profile.City)
	assert.Equal(t, 3, out.Profile.FamilySize)
	assert.Equal(t, 0, out.Profile.Age)
	assert.Equal(t, "Ana", out.Name)

	age := 30
	out, err = uc.UpdateProfile(testUserID, dto.UpdateProfileRequest{Age: &age})
	require.NoError(t, err)
	assert.Equal(t, 30, out.Profile.Age)
	assert.Equal(t, 3, out.Profile.FamilySize)
}

func TestUpdateProfile_Validaciones(t *testing.T) {
	uc, _ := newUserUseCase(t)
	zero := decimal.Zero
	young := 17
	old := 121
	none := 0
	empty := "  "

	for name, req := range map[string]dto.UpdateProfileRequest{
		"ingreso cero":  {MonthlyIncome: &zero},
		"menor de edad": {Age: &young},
		"edad excesiva": {Age: &old},
		"familia vacía": {FamilySize: &none},
		"nombre vacío":  {Name: &empty},
	} {
		_, err := uc.UpdateProfile(testUserID, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}

	_, err := uc.UpdateProfile("no-existe", dto.UpdateProfileRequest{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListYSetStatus(t *testing.T) {
	uc, _ := newUserUseCase(t)

	list, err := uc.List(dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "ana@example.com", list.Items[0].Email)

	out, err := uc.SetStatus(testUserID, entity.UserStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusSuspended, out.Status)

	_, err = uc.SetStatus(testUserID, "borrado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
