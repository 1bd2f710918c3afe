// Package tables carga desde TOML las tablas del motor de asignación.
// Cada sección presente en el archivo reemplaza completa a la sección por defecto;
// las ausentes conservan los valores de budget.DefaultTables.
package tables

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jhoicas/finanzas-api/internal/domain/budget"
)

type file struct {
	Categories     []budget.CategoryWeight   `toml:"categories"`
	Cities         map[string]budget.Factors `toml:"cities"`
	CityAliases    map[string]string         `toml:"city_aliases"`
	FamilySize     map[string]budget.Factors `toml:"family_size"`
	FamilyBounds   map[string]budget.Bounds  `toml:"family_bounds"`
	IncomeBrackets []budget.IncomeBracket    `toml:"income_brackets"`
	AgeBrackets    []budget.AgeBracket       `toml:"age_brackets"`
}

// Load lee path y lo superpone a las tablas por defecto. path vacío = tablas por defecto.
func Load(path string) (budget.Tables, error) {
	if path == "" {
		return budget.DefaultTables(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return budget.Tables{}, fmt.Errorf("tables: leer %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return budget.Tables{}, fmt.Errorf("tables: %s: %w", path, err)
	}
	return t, nil
}

// Parse decodifica el TOML y valida el resultado.
func Parse(data []byte) (budget.Tables, error) {
	var f file
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return budget.Tables{}, fmt.Errorf("decodificar TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return budget.Tables{}, fmt.Errorf("claves desconocidas: %s", strings.Join(keys, ", "))
	}

	t := budget.DefaultTables()
	if md.IsDefined("categories") {
		t.Categories = f.Categories
	}
	if md.IsDefined("cities") {
		t.Cities = make(map[string]budget.Factors, len(f.Cities)+1)
		for k, v := range f.Cities {
			t.Cities[strings.ToLower(strings.TrimSpace(k))] = v
		}
		if _, ok := t.Cities[budget.DefaultCity]; !ok {
			t.Cities[budget.DefaultCity] = budget.Factors{}
		}
	}
	if md.IsDefined("city_aliases") {
		t.CityAliases = make(map[string]string, len(f.CityAliases))
		for k, v := range f.CityAliases {
			t.CityAliases[strings.ToLower(strings.TrimSpace(k))] = strings.ToLower(strings.TrimSpace(v))
		}
	}
	if md.IsDefined("family_size") {
		t.FamilySize = make(map[int]budget.Factors, len(f.FamilySize))
		for k, v := range f.FamilySize {
			n, err := strconv.Atoi(k)
			if err != nil {
				return budget.Tables{}, fmt.Errorf("family_size: clave %q no es un entero", k)
			}
			t.FamilySize[n] = v
		}
	}
	if md.IsDefined("family_bounds") {
		t.FamilyBounds = f.FamilyBounds
	}
	if md.IsDefined("income_brackets") {
		t.IncomeBrackets = f.IncomeBrackets
		sort.SliceStable(t.IncomeBrackets, func(i, j int) bool { return t.IncomeBrackets[i].Min < t.IncomeBrackets[j].Min })
	}
	if md.IsDefined("age_brackets") {
		t.AgeBrackets = f.AgeBrackets
		sort.SliceStable(t.AgeBrackets, func(i, j int) bool { return t.AgeBrackets[i].MinAge < t.AgeBrackets[j].MinAge })
	}

	if err := validate(t); err != nil {
		return budget.Tables{}, err
	}
	return t, nil
}

func validate(t budget.Tables) error {
	if len(t.Categories) == 0 {
		return fmt.Errorf("categories: al menos una categoría")
	}
	seen := make(map[string]bool, len(t.Categories))
	var sum float64
	for _, c := range t.Categories {
		if c.ID == "" {
			return fmt.Errorf("categories: id vacío")
		}
		if seen[c.ID] {
			return fmt.Errorf("categories: %q repetida", c.ID)
		}
		seen[c.ID] = true
		if c.BasePercentage < 0 {
			return fmt.Errorf("categories: %q con porcentaje base negativo", c.ID)
		}
		sum += c.BasePercentage
	}
	if sum <= 0 {
		return fmt.Errorf("categories: los porcentajes base suman 0")
	}
	for alias, key := range t.CityAliases {
		if _, ok := t.Cities[key]; !ok {
			return fmt.Errorf("city_aliases: %q apunta a ciudad inexistente %q", alias, key)
		}
	}
	for key, f := range t.Cities {
		if err := checkFactors("cities."+key, f); err != nil {
			return err
		}
	}
	for n := 1; n <= budget.BaselineFamilySize; n++ {
		f, ok := t.FamilySize[n]
		if !ok {
			return fmt.Errorf("family_size: falta el tamaño %d", n)
		}
		if err := checkFactors(fmt.Sprintf("family_size.%d", n), f); err != nil {
			return err
		}
	}
	for cat, b := range t.FamilyBounds {
		if b.Min < 0 || b.Max < 0 {
			return fmt.Errorf("family_bounds: %q con límite negativo", cat)
		}
		if b.Min > b.Max {
			return fmt.Errorf("family_bounds: %q con min > max", cat)
		}
	}
	// Toda categoría que cambia entre 3 y 4 personas se extrapola para familias
	// grandes y necesita límites.
	last, prev := t.FamilySize[budget.BaselineFamilySize], t.FamilySize[budget.BaselineFamilySize-1]
	for _, c := range t.Categories {
		if last.Of(c.ID) == prev.Of(c.ID) {
			continue
		}
		if _, ok := t.FamilyBounds[c.ID]; !ok {
			return fmt.Errorf("family_bounds: falta %q (varía entre %d y %d personas)",
				c.ID, budget.BaselineFamilySize-1, budget.BaselineFamilySize)
		}
	}
	for _, b := range t.IncomeBrackets {
		if err := checkFactors("income_brackets."+b.Name, b.Factors); err != nil {
			return err
		}
	}
	for _, b := range t.AgeBrackets {
		if err := checkFactors("age_brackets."+b.Name, b.Factors); err != nil {
			return err
		}
	}
	return nil
}

func checkFactors(section string, f budget.Factors) error {
	for cat, v := range f {
		if v < 0 {
			return fmt.Errorf("%s: multiplicador negativo para %q", section, cat)
		}
	}
	return nil
}
