package budget

import "strings"

// Categorías de gasto (IDs estables, se persisten en presupuestos y gastos).
const (
	CategoryHousing        = "housing"
	CategoryFood           = "food"
	CategoryTransportation = "transportation"
	CategoryUtilities      = "utilities"
	CategoryHealthcare     = "healthcare"
	CategoryEducation      = "education"
	CategoryEntertainment  = "entertainment"
	CategoryShopping       = "shopping"
	CategoryPersonalCare   = "personal_care"
	CategorySavings        = "savings"
)

// DefaultCity clave del set de factores usado cuando la ciudad no se reconoce.
const DefaultCity = "default"

// CategoryWeight peso base de una categoría antes de aplicar ajustes.
type CategoryWeight struct {
	ID             string  `toml:"id" json:"id"`
	BasePercentage float64 `toml:"base_percentage" json:"base_percentage"` // 0–1
	Description    string  `toml:"description" json:"description"`
}

// Factors multiplicadores por categoría. Una categoría ausente vale 1.0.
type Factors map[string]float64

// Of devuelve el multiplicador de la categoría (1.0 si no está definido).
func (f Factors) Of(category string) float64 {
	if v, ok := f[category]; ok {
		return v
	}
	return 1.0
}

// Bounds límites del multiplicador de tamaño de familia para hogares de más de 4 personas.
type Bounds struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

// IncomeBracket tramo de ingreso mensual [Min, Max). Max == 0 significa sin tope.
type IncomeBracket struct {
	Name    string  `toml:"name"`
	Min     float64 `toml:"min"`
	Max     float64 `toml:"max"`
	Factors Factors `toml:"factors"`
}

// AgeBracket tramo de edad [MinAge, MaxAge]. MaxAge == 0 significa sin tope.
type AgeBracket struct {
	Name    string  `toml:"name"`
	MinAge  int     `toml:"min_age"`
	MaxAge  int     `toml:"max_age"`
	Factors Factors `toml:"factors"`
}

// Tables agrupa todas las tablas estáticas que consume el motor de asignación.
type Tables struct {
	Categories     []CategoryWeight
	Cities         map[string]Factors // clave en minúsculas; debe incluir DefaultCity
	CityAliases    map[string]string  // alias en minúsculas -> clave de Cities
	FamilySize     map[int]Factors    // 1..BaselineFamilySize
	FamilyBounds   map[string]Bounds
	IncomeBrackets []IncomeBracket // ordenados por Min ascendente
	AgeBrackets    []AgeBracket    // ordenados por MinAge ascendente
}

// BaselineFamilySize último tamaño de familia con tabla explícita.
const BaselineFamilySize = 4

// DefaultTables devuelve una copia nueva de las tablas por defecto (ingresos en INR).
func DefaultTables() Tables {
	return Tables{
		Categories: []CategoryWeight{
			{ID: CategoryHousing, BasePercentage: 0.25, Description: "Arriendo o cuota de vivienda y mantenimiento"},
			{ID: CategoryFood, BasePercentage: 0.15, Description: "Mercado y comidas fuera de casa"},
			{ID: CategoryTransportation, BasePercentage: 0.10, Description: "Combustible, transporte público y vehículo"},
			{ID: CategoryUtilities, BasePercentage: 0.07, Description: "Electricidad, agua, gas, internet y telefonía"},
			{ID: CategoryHealthcare, BasePercentage: 0.05, Description: "Consultas, medicamentos y seguro médico"},
			{ID: CategoryEducation, BasePercentage: 0.05, Description: "Matrículas, cursos y material de estudio"},
			{ID: CategoryEntertainment, BasePercentage: 0.05, Description: "Ocio, suscripciones y salidas"},
			{ID: CategoryShopping, BasePercentage: 0.05, Description: "Ropa, hogar y compras varias"},
			{ID: CategoryPersonalCare, BasePercentage: 0.03, Description: "Cuidado personal"},
			{ID: CategorySavings, BasePercentage: 0.20, Description: "Ahorro e inversión"},
		},
		Cities: map[string]Factors{
			"mumbai":    {CategoryHousing: 1.4, CategoryTransportation: 1.1, CategoryFood: 1.1, CategorySavings: 0.9},
			"delhi":     {CategoryHousing: 1.25, CategoryTransportation: 1.1, CategoryUtilities: 1.1, CategorySavings: 0.95},
			"bangalore": {CategoryHousing: 1.3, CategoryTransportation: 1.15, CategoryEntertainment: 1.1, CategorySavings: 0.95},
			"chennai":   {CategoryHousing: 1.1, CategoryUtilities: 1.1},
			"hyderabad": {CategoryHousing: 1.05, CategorySavings: 1.05},
			"pune":      {CategoryHousing: 1.1, CategoryEducation: 1.1},
			"kolkata":   {CategoryHousing: 0.9, CategoryFood: 0.95, CategorySavings: 1.1},
			"ahmedabad": {CategoryHousing: 0.9, CategorySavings: 1.1},
			DefaultCity: {},
		},
		CityAliases: map[string]string{
			"bombay":    "mumbai",
			"new delhi": "delhi",
			"bengaluru": "bangalore",
			"madras":    "chennai",
			"calcutta":  "kolkata",
		},
		FamilySize: map[int]Factors{
			1: {
				CategoryHousing: 0.85, CategoryFood: 0.8, CategoryTransportation: 0.9, CategoryUtilities: 0.85,
				CategoryHealthcare: 0.8, CategoryEducation: 0.5, CategoryEntertainment: 1.2, CategoryShopping: 1.1,
				CategoryPersonalCare: 1.0, CategorySavings: 1.3,
			},
			2: {
				CategoryHousing: 1.0, CategoryFood: 1.0, CategoryTransportation: 1.0, CategoryUtilities: 1.0,
				CategoryHealthcare: 1.0, CategoryEducation: 0.8, CategoryEntertainment: 1.0, CategoryShopping: 1.0,
				CategoryPersonalCare: 1.0, CategorySavings: 1.0,
			},
			3: {
				CategoryHousing: 1.1, CategoryFood: 1.2, CategoryTransportation: 1.05, CategoryUtilities: 1.1,
				CategoryHealthcare: 1.15, CategoryEducation: 1.2, CategoryEntertainment: 0.9, CategoryShopping: 0.95,
				CategoryPersonalCare: 1.0, CategorySavings: 0.85,
			},
			4: {
				CategoryHousing: 1.2, CategoryFood: 1.35, CategoryTransportation: 1.1, CategoryUtilities: 1.2,
				CategoryHealthcare: 1.3, CategoryEducation: 1.4, CategoryEntertainment: 0.8, CategoryShopping: 0.9,
				CategoryPersonalCare: 1.0, CategorySavings: 0.7,
			},
		},
		FamilyBounds: map[string]Bounds{
			CategoryHousing:        {Min: 0.8, Max: 1.6},
			CategoryFood:           {Min: 0.8, Max: 2.0},
			CategoryTransportation: {Min: 0.8, Max: 1.3},
			CategoryUtilities:      {Min: 0.8, Max: 1.6},
			CategoryHealthcare:     {Min: 0.8, Max: 1.9},
			CategoryEducation:      {Min: 0.5, Max: 2.0},
			CategoryEntertainment:  {Min: 0.5, Max: 1.2},
			CategoryShopping:       {Min: 0.7, Max: 1.1},
			CategoryPersonalCare:   {Min: 1.0, Max: 1.0},
			CategorySavings:        {Min: 0.4, Max: 1.3},
		},
		IncomeBrackets: []IncomeBracket{
			{Name: "low", Min: 0, Max: 25000, Factors: Factors{
				CategoryHousing: 1.1, CategoryFood: 1.15, CategoryEntertainment: 0.6, CategoryShopping: 0.7, CategorySavings: 0.6,
			}},
			{Name: "lower_middle", Min: 25000, Max: 50000, Factors: Factors{
				CategoryFood: 1.05, CategoryEntertainment: 0.85, CategorySavings: 0.85,
			}},
			{Name: "middle", Min: 50000, Max: 100000, Factors: Factors{}},
			{Name: "upper_middle", Min: 100000, Max: 200000, Factors: Factors{
				CategoryHousing: 0.95, CategoryFood: 0.9, CategoryEntertainment: 1.1, CategorySavings: 1.2,
			}},
			{Name: "high", Min: 200000, Max: 0, Factors: Factors{
				CategoryHousing: 0.85, CategoryFood: 0.75, CategoryUtilities: 0.85,
				CategoryEntertainment: 1.2, CategoryShopping: 1.2, CategorySavings: 1.4,
			}},
		},
		AgeBrackets: []AgeBracket{
			{Name: "18-25", MinAge: 18, MaxAge: 25, Factors: Factors{
				CategoryEducation: 1.3, CategoryEntertainment: 1.2, CategoryHealthcare: 0.7, CategorySavings: 0.9,
			}},
			{Name: "26-35", MinAge: 26, MaxAge: 35, Factors: Factors{CategorySavings: 1.1}},
			{Name: "36-50", MinAge: 36, MaxAge: 50, Factors: Factors{CategoryEducation: 1.2, CategoryHealthcare: 1.1}},
			{Name: "51-60", MinAge: 51, MaxAge: 60, Factors: Factors{
				CategoryHealthcare: 1.4, CategoryEducation: 0.7, CategorySavings: 1.2,
			}},
			{Name: "60+", MinAge: 61, MaxAge: 0, Factors: Factors{
				CategoryHealthcare: 1.7, CategoryEducation: 0.4, CategoryTransportation: 0.8, CategoryEntertainment: 0.9,
			}},
		},
	}
}

// CategoryIDs devuelve los IDs de categoría en el orden de la tabla.
func (t Tables) CategoryIDs() []string {
	ids := make([]string, 0, len(t.Categories))
	for _, c := range t.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// HasCategory informa si la categoría existe en la tabla base.
func (t Tables) HasCategory(id string) bool {
	for _, c := range t.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// BasePercentages devuelve la tabla base como mapa categoría -> porcentaje.
func (t Tables) BasePercentages() map[string]float64 {
	out := make(map[string]float64, len(t.Categories))
	for _, c := range t.Categories {
		out[c.ID] = c.BasePercentage
	}
	return out
}

// CityKey normaliza el nombre de la ciudad a la clave de la tabla (o DefaultCity).
func (t Tables) CityKey(city string) string {
	key := strings.ToLower(strings.TrimSpace(city))
	if alias, ok := t.CityAliases[key]; ok {
		key = alias
	}
	if _, ok := t.Cities[key]; ok {
		return key
	}
	return DefaultCity
}

// CityFactors devuelve los factores de la ciudad, con fallback a DefaultCity.
func (t Tables) CityFactors(city string) Factors {
	return t.Cities[t.CityKey(city)]
}

// FamilySizeFactor multiplicador de la categoría para el tamaño de familia.
// Por encima de BaselineFamilySize extrapola linealmente con la pendiente del
// paso 3→4 y recorta a FamilyBounds. Nunca devuelve un valor negativo.
func (t Tables) FamilySizeFactor(size int, category string) float64 {
	if size < 1 {
		size = 1
	}
	if f, ok := t.FamilySize[size]; ok {
		return f.Of(category)
	}
	base := t.FamilySize[BaselineFamilySize].Of(category)
	prev := t.FamilySize[BaselineFamilySize-1].Of(category)
	v := base + float64(size-BaselineFamilySize)*(base-prev)
	if b, ok := t.FamilyBounds[category]; ok {
		if v < b.Min {
			v = b.Min
		}
		if v > b.Max {
			v = b.Max
		}
	}
	if v < 0 {
		v = 0
	}
	return v
}

// IncomeBracketFor devuelve el tramo al que pertenece el ingreso mensual.
func (t Tables) IncomeBracketFor(monthlyIncome float64) IncomeBracket {
	for _, b := range t.IncomeBrackets {
		if monthlyIncome >= b.Min && (b.Max == 0 || monthlyIncome < b.Max) {
			return b
		}
	}
	return IncomeBracket{Name: "unknown", Factors: Factors{}}
}

// AgeBracketFor devuelve el tramo de edad. Edades por debajo del primer tramo usan el primero.
func (t Tables) AgeBracketFor(age int) AgeBracket {
	if len(t.AgeBrackets) == 0 {
		return AgeBracket{Name: "unknown", Factors: Factors{}}
	}
	if age < t.AgeBrackets[0].MinAge {
		return t.AgeBrackets[0]
	}
	for _, b := range t.AgeBrackets {
		if age >= b.MinAge && (b.MaxAge == 0 || age <= b.MaxAge) {
			return b
		}
	}
	return t.AgeBrackets[len(t.AgeBrackets)-1]
}
