// Package budgeting orquesta el motor de asignación con el perfil del usuario,
// la persistencia mensual y los consejos opcionales del LLM.
package budgeting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/application/ports"
	"github.com/jhoicas/finanzas-api/internal/domain"
	"github.com/jhoicas/finanzas-api/internal/domain/budget"
	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/domain/repository"
	"github.com/jhoicas/finanzas-api/pkg/logger"
)

const adviceTimeout = 10 * time.Second

// UseCase casos de uso de presupuestos mensuales.
type UseCase struct {
	users    repository.UserRepository
	budgets  repository.BudgetRepository
	spending repository.SpendingRepository
	engine   *budget.Engine
	advisor  ports.BudgetAdvisor // opcional
	reports  ReportGenerator
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. advisor puede ser nil (sin consejos IA).
func NewUseCase(
	users repository.UserRepository,
	budgets repository.BudgetRepository,
	spending repository.SpendingRepository,
	engine *budget.Engine,
	advisor ports.BudgetAdvisor,
	reports ReportGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		users:    users,
		budgets:  budgets,
		spending: spending,
		engine:   engine,
		advisor:  advisor,
		reports:  reports,
		log:      log,
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Generate calcula el presupuesto del mes con el perfil guardado (más los overrides
// del request) y lo persiste sobrescribiendo el anterior del mismo mes.
func (uc *UseCase) Generate(ctx context.Context, userID string, in dto.GenerateBudgetRequest) (*dto.BudgetResponse, error) {
	month, err := uc.resolveMonth(in.Month)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	profile := profileWithOverrides(user, in)
	if profile.MonthlyIncome.IsZero() || profile.FamilySize == 0 || profile.Age == 0 {
		return nil, domain.ErrProfileIncomplete
	}
	if err := budget.ValidateProfile(profile); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	alloc, err := uc.engine.Allocate(profile, nil)
	if err != nil {
		return nil, fmt.Errorf("budget: asignar: %w", err)
	}

	var advice string
	if in.IncludeAdvice {
		advice = uc.advice(ctx, profile, alloc)
	}

	now := uc.now()
	b := &entity.Budget{
		ID:                uuid.New().String(),
		UserID:            userID,
		Month:             month,
		MonthlyIncome:     profile.MonthlyIncome,
		City:              profile.City,
		FamilySize:        profile.FamilySize,
		Age:               profile.Age,
		Items:             make([]entity.BudgetItem, 0, len(alloc.Items)),
		TotalBudget:       alloc.TotalBudget,
		SavingsAmount:     alloc.SavingsAmount,
		SavingsPercentage: alloc.SavingsPercentage,
		Advice:            advice,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for _, it := range alloc.Items {
		b.Items = append(b.Items, entity.BudgetItem{Category: it.Category, Amount: it.Amount, Percentage: it.Percentage})
	}
	if err := uc.budgets.Upsert(ctx, b); err != nil {
		return nil, fmt.Errorf("budget: guardar: %w", err)
	}
	uc.log.Info().
		Str("user_id", userID).
		Str("month", month).
		Str("city_key", alloc.CityKey).
		Str("income_bracket", alloc.IncomeBracket).
		Msg("presupuesto generado")
	return ToBudgetResponse(b), nil
}

// advice pide consejos al LLM. Un fallo no invalida el presupuesto.
func (uc *UseCase) advice(ctx context.Context, profile budget.Profile, alloc *budget.Allocation) string {
	if uc.advisor == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, adviceTimeout)
	defer cancel()

	text, err := uc.advisor.GenerateBudgetAdvice(ctx, profile, alloc)
	if err != nil {
		uc.log.Warn().Err(err).Msg("budget: consejos IA no disponibles")
		return ""
	}
	return text
}

// Get devuelve el presupuesto del mes.
func (uc *UseCase) Get(ctx context.Context, userID, month string) (*dto.BudgetResponse, error) {
	b, err := uc.load(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	return ToBudgetResponse(b), nil
}

// List presupuestos del usuario, del más reciente al más antiguo.
func (uc *UseCase) List(ctx context.Context, userID string, limit int) ([]dto.BudgetResponse, error) {
	if limit <= 0 || limit > 24 {
		limit = 12
	}
	list, err := uc.budgets.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BudgetResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *ToBudgetResponse(b))
	}
	return out, nil
}

// Customize reemplaza montos por categoría. Los porcentajes se recalculan sobre el
// nuevo total y el presupuesto queda marcado como personalizado.
func (uc *UseCase) Customize(ctx context.Context, userID, month string, in dto.CustomizeBudgetRequest) (*dto.BudgetResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items es obligatorio", domain.ErrInvalidInput)
	}
	b, err := uc.load(ctx, userID, month)
	if err != nil {
		return nil, err
	}

	tables := uc.engine.Tables()
	for cat, amount := range in.Items {
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: el monto de %s no puede ser negativo", domain.ErrInvalidInput, cat)
		}
		if _, ok := b.Item(cat); !ok && !tables.HasCategory(cat) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, cat)
		}
	}

	items := make([]entity.BudgetItem, 0, len(b.Items)+len(in.Items))
	seen := make(map[string]bool, len(b.Items))
	for _, it := range b.Items {
		if amount, ok := in.Items[it.Category]; ok {
			it.Amount = amount.Round(0)
		}
		seen[it.Category] = true
		items = append(items, it)
	}
	for _, cat := range tables.CategoryIDs() {
		if amount, ok := in.Items[cat]; ok && !seen[cat] {
			items = append(items, entity.BudgetItem{Category: cat, Amount: amount.Round(0)})
		}
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: el total del presupuesto debe ser mayor que 0", domain.ErrInvalidInput)
	}

	b.SavingsAmount = decimal.Zero
	b.SavingsPercentage = 0
	for i := range items {
		items[i].Percentage = items[i].Amount.Div(total).InexactFloat64()
		if items[i].Category == budget.CategorySavings {
			b.SavingsAmount = items[i].Amount
			b.SavingsPercentage = items[i].Percentage
		}
	}
	b.Items = items
	b.TotalBudget = total
	b.Customized = true
	b.UpdatedAt = uc.now()

	if err := uc.budgets.Upsert(ctx, b); err != nil {
		return nil, fmt.Errorf("budget: guardar: %w", err)
	}
	return ToBudgetResponse(b), nil
}

// Categories categorías por defecto con su porcentaje base.
func (uc *UseCase) Categories() []dto.CategoryDTO {
	cats := uc.engine.Tables().Categories
	out := make([]dto.CategoryDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.CategoryDTO{ID: c.ID, BasePercentage: c.BasePercentage, Description: c.Description})
	}
	return out
}

// Report genera el PDF del mes con asignado vs gastado por categoría.
func (uc *UseCase) Report(ctx context.Context, userID, month string) (pdfBytes []byte, filename string, err error) {
	b, err := uc.load(ctx, userID, month)
	if err != nil {
		return nil, "", err
	}
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrUserNotFound
	}
	from, to, _ := budget.MonthRange(b.Month)
	spent, err := uc.spending.SumByCategory(ctx, userID, from, to)
	if err != nil {
		return nil, "", fmt.Errorf("budget: gasto por categoría: %w", err)
	}

	report := BuildReport(b, spent)
	report.UserName = user.Name
	report.Email = user.Email

	pdfBytes, err = uc.reports.GenerateBudgetReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("budget: generar PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("presupuesto-%s.pdf", b.Month), nil
}

// BuildReport cruza las asignaciones con el gasto. Las categorías con gasto pero sin
// asignación aparecen al final con asignado 0.
func BuildReport(b *entity.Budget, spent []repository.CategorySpend) *BudgetReport {
	byCat := make(map[string]decimal.Decimal, len(spent))
	for _, s := range spent {
		byCat[s.Category] = s.Total
	}
	r := &BudgetReport{Budget: b, TotalSpent: decimal.Zero}
	for _, it := range b.Items {
		s := byCat[it.Category]
		delete(byCat, it.Category)
		r.Lines = append(r.Lines, ReportLine{Category: it.Category, Allocated: it.Amount, Spent: s, Percentage: it.Percentage})
		r.TotalSpent = r.TotalSpent.Add(s)
	}
	for _, s := range spent {
		if total, ok := byCat[s.Category]; ok {
			r.Lines = append(r.Lines, ReportLine{Category: s.Category, Allocated: decimal.Zero, Spent: total})
			r.TotalSpent = r.TotalSpent.Add(total)
		}
	}
	return r
}

func (uc *UseCase) load(ctx context.Context, userID, month string) (*entity.Budget, error) {
	if _, _, err := budget.MonthRange(month); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	b, err := uc.budgets.GetByMonth(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrBudgetNotFound
	}
	return b, nil
}

func (uc *UseCase) resolveMonth(month string) (string, error) {
	if month == "" {
		return budget.MonthOf(uc.now()), nil
	}
	if _, _, err := budget.MonthRange(month); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return month, nil
}

func profileWithOverrides(u *entity.User, in dto.GenerateBudgetRequest) budget.Profile {
	p := budget.Profile{
		MonthlyIncome: u.MonthlyIncome,
		City:          u.City,
		FamilySize:    u.FamilySize,
		Age:           u.Age,
	}
	if in.MonthlyIncome != nil {
		p.MonthlyIncome = *in.MonthlyIncome
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.FamilySize != nil {
		p.FamilySize = *in.FamilySize
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	return p
}

// ToBudgetResponse mapea la entidad al DTO.
func ToBudgetResponse(b *entity.Budget) *dto.BudgetResponse {
	items := make([]dto.BudgetItemDTO, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, dto.BudgetItemDTO{Category: it.Category, Amount: it.Amount, Percentage: it.Percentage})
	}
	return &dto.BudgetResponse{
		ID:    b.ID,
		Month: b.Month,
		Profile: dto.ProfileDTO{
			MonthlyIncome: b.MonthlyIncome,
			City:          b.City,
			FamilySize:    b.FamilySize,
			Age:           b.Age,
		},
		Items:             items,
		TotalBudget:       b.TotalBudget,
		SavingsAmount:     b.SavingsAmount,
		SavingsPercentage: b.SavingsPercentage,
		Customized:        b.Customized,
		Advice:            b.Advice,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// IsConfigError informa si err proviene de tablas mal configuradas.
func IsConfigError(err error) bool {
	return errors.Is(err, budget.ErrZeroTotalWeight) || errors.Is(err, budget.ErrNegativeBasePercentage)
}
