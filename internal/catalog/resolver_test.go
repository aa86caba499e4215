package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

func TestResolveCountry(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"nombre canónico", "Colombia", "169"},
		{"alias en inglés", "United States", "249"},
		{"sigla", "USA", "249"},
		{"sin distinguir mayúsculas", "estados unidos", "249"},
		{"sin distinguir acentos", "Peru", "589"},
		{"con acentos", "Perú", "589"},
		{"coincidencia parcial", "reino", "300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveCountry(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCountryUsesSireCodesNotISO(t *testing.T) {
	r := NewResolver()

	got, err := r.ResolveCountry("United States")
	require.NoError(t, err)
	assert.Equal(t, "249", got)
	// 840 es el código ISO-3166 numérico; SIRE usa su propia tabla
	assert.NotEqual(t, "840", got)
}

func TestResolveCountryNotFound(t *testing.T) {
	r := NewResolver()

	for _, input := range []string{"", "   ", "Atlántida", "xyz123"} {
		_, err := r.ResolveCountry(input)
		assert.ErrorIs(t, err, domain.ErrCatalogNotFound, "input %q", input)
	}
}

func TestResolveCity(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"nombre canónico", "Medellín", "05001"},
		{"sin acentos", "Medellin", "05001"},
		{"alias", "Bogota", "11001"},
		{"código con cero inicial", "05001", "05001"},
		{"código sin ambigüedad", "11001", "11001"},
		{"alias largo", "Cartagena", "13001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveCity(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCityPreservesLeadingZeros(t *testing.T) {
	r := NewResolver()

	got, err := r.ResolveCity("Medellín")
	require.NoError(t, err)
	assert.Equal(t, "05001", got)
	assert.Len(t, got, 5)
}

func TestResolveCitySanAndresAlwaysIsland(t *testing.T) {
	r := NewResolver()

	// "San Andrés" a secas resuelve siempre a la isla, nunca a los
	// municipios continentales homónimos (68669, 23670, 52835, 05658)
	for _, input := range []string{"San Andrés", "san andres", "SAN ANDRES", "San Andres Isla"} {
		got, err := r.ResolveCity(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, "88001", got, "input %q", input)
	}
}

func TestResolveCityIsDeterministic(t *testing.T) {
	r := NewResolver()

	first, err := r.ResolveCity("san andres")
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		got, err := r.ResolveCity("san andres")
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestResolveCityUnknownCode(t *testing.T) {
	r := NewResolver()

	_, err := r.ResolveCity("99999")
	assert.ErrorIs(t, err, domain.ErrCatalogNotFound)
}

func TestResolveCityNotFound(t *testing.T) {
	r := NewResolver()

	_, err := r.ResolveCity("Ciudad Inexistente")
	assert.ErrorIs(t, err, domain.ErrCatalogNotFound)
}

func TestValidateCodeFormat(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		code string
		kind Kind
		want bool
	}{
		{"249", KindCountry, true},
		{"5", KindCountry, true},
		{"0249", KindCountry, false},
		{"abc", KindCountry, false},
		{"", KindCountry, false},
		{"05001", KindCity, true},
		{"5001", KindCity, false},
		{"050011", KindCity, false},
		{"249", KindCity, false},
		{"249", KindCityOrCountry, true},
		{"05001", KindCityOrCountry, true},
		{"abc", KindCityOrCountry, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, r.ValidateCodeFormat(tt.code, tt.kind),
			"code %q kind %s", tt.code, tt.kind)
	}
}

func TestSearch(t *testing.T) {
	r := NewResolver()

	results := r.Search("san", KindCity)
	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), 10)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].DisplayName, results[i].DisplayName)
	}
	for _, entry := range results {
		assert.Equal(t, KindCity, entry.Kind)
	}
}

func TestSearchFiltersByKind(t *testing.T) {
	r := NewResolver()

	for _, entry := range r.Search("co", KindCountry) {
		assert.Equal(t, KindCountry, entry.Kind)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	r := NewResolver()

	assert.Empty(t, r.Search("", KindCityOrCountry))
	assert.Empty(t, r.Search("   ", KindCityOrCountry))
}

func TestCountryName(t *testing.T) {
	r := NewResolver()

	name, ok := r.CountryName("249")
	require.True(t, ok)
	assert.Equal(t, "Estados Unidos", name)

	_, ok = r.CountryName("999")
	assert.False(t, ok)
}
