package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

// Kind distingue los dos catálogos geográficos. Algunos campos SIRE aceptan
// ciudad O país según el lugar referido sea nacional o internacional; para
// esos campos se usa KindCityOrCountry.
type Kind string

const (
	KindCountry       Kind = "country"
	KindCity          Kind = "city"
	KindCityOrCountry Kind = "city_or_country"
)

// Entry es una entrada resuelta del catálogo, apta para autocompletado.
type Entry struct {
	Code        string `json:"code"`
	DisplayName string `json:"displayName"`
	Kind        Kind   `json:"kind"`
}

var (
	countryCodePattern = regexp.MustCompile(`^[0-9]{1,3}$`)
	cityCodePattern    = regexp.MustCompile(`^[0-9]{5}$`)
)

// maxSearchResults limita los candidatos devueltos al autocompletado.
const maxSearchResults = 10

// Resolver resuelve nombres de países y ciudades contra los catálogos SIRE y
// DIVIPOLA embebidos. Las tablas son inmutables después de la carga, por lo
// que el Resolver se comparte entre requests concurrentes sin locking.
type Resolver struct {
	countriesByCode map[string]Entry
	citiesByCode    map[string]Entry
	countryByName   map[string]string // nombre normalizado (canónico o alias) -> código
	cityByName      map[string]string
	entries         []Entry // ordenadas alfabéticamente por nombre
}

// NewResolver carga los catálogos embebidos. Se invoca una sola vez al
// arranque del proceso.
func NewResolver() *Resolver {
	r := &Resolver{
		countriesByCode: make(map[string]Entry),
		citiesByCode:    make(map[string]Entry),
		countryByName:   make(map[string]string),
		cityByName:      make(map[string]string),
	}

	for _, rec := range countryRecords {
		entry := Entry{Code: rec.code, DisplayName: rec.name, Kind: KindCountry}
		r.countriesByCode[rec.code] = entry
		r.countryByName[normalize(rec.name)] = rec.code
		for _, alias := range rec.aliases {
			r.countryByName[normalize(alias)] = rec.code
		}
		r.entries = append(r.entries, entry)
	}

	for _, rec := range cityRecords {
		entry := Entry{Code: rec.code, DisplayName: rec.name, Kind: KindCity}
		r.citiesByCode[rec.code] = entry
		r.cityByName[normalize(rec.name)] = rec.code
		for _, alias := range rec.aliases {
			r.cityByName[normalize(alias)] = rec.code
		}
		r.entries = append(r.entries, entry)
	}

	sort.Slice(r.entries, func(i, j int) bool {
		return r.entries[i].DisplayName < r.entries[j].DisplayName
	})

	return r
}

// ResolveCountry resuelve un nombre o alias de país a su código SIRE.
// Precedencia: nombre canónico exacto, alias, coincidencia parcial sin
// distinguir mayúsculas ni acentos. Nunca adivina: si no hay coincidencia
// devuelve ErrCatalogNotFound.
func (r *Resolver) ResolveCountry(nameOrAlias string) (string, error) {
	query := normalize(nameOrAlias)
	if query == "" {
		return "", fmt.Errorf("%w: nombre de país vacío", domain.ErrCatalogNotFound)
	}

	if code, ok := r.countryByName[query]; ok {
		return code, nil
	}

	if code := substringMatch(r.countryByName, query); code != "" {
		return code, nil
	}

	return "", fmt.Errorf("%w: país %q", domain.ErrCatalogNotFound, nameOrAlias)
}

// ResolveCity resuelve un nombre o código DIVIPOLA a su código de 5 dígitos.
// La tabla de desambiguación se consulta antes que cualquier búsqueda
// genérica, de modo que los nombres ambiguos resuelven siempre al mismo
// municipio.
func (r *Resolver) ResolveCity(nameOrCode string) (string, error) {
	raw := strings.TrimSpace(nameOrCode)
	if raw == "" {
		return "", fmt.Errorf("%w: nombre de ciudad vacío", domain.ErrCatalogNotFound)
	}

	// Si ya viene como código DIVIPOLA, validar que exista
	if cityCodePattern.MatchString(raw) {
		if _, ok := r.citiesByCode[raw]; ok {
			return raw, nil
		}
		return "", fmt.Errorf("%w: código DIVIPOLA %q", domain.ErrCatalogNotFound, raw)
	}

	query := normalize(raw)

	if code, ok := cityOverrides[query]; ok {
		return code, nil
	}

	if code, ok := r.cityByName[query]; ok {
		return code, nil
	}

	if code := substringMatch(r.cityByName, query); code != "" {
		return code, nil
	}

	return "", fmt.Errorf("%w: ciudad %q", domain.ErrCatalogNotFound, nameOrCode)
}

// CountryName devuelve el nombre canónico de un código de país, si existe.
func (r *Resolver) CountryName(code string) (string, bool) {
	entry, ok := r.countriesByCode[code]
	return entry.DisplayName, ok
}

// CityName devuelve el nombre canónico de un código DIVIPOLA, si existe.
func (r *Resolver) CityName(code string) (string, bool) {
	entry, ok := r.citiesByCode[code]
	return entry.DisplayName, ok
}

// ValidateCodeFormat verifica que un código cumpla el formato del catálogo
// esperado: país 1-3 dígitos, ciudad exactamente 5. Un campo ciudad-o-país es
// válido si cumple cualquiera de los dos.
func (r *Resolver) ValidateCodeFormat(code string, kind Kind) bool {
	switch kind {
	case KindCountry:
		return countryCodePattern.MatchString(code)
	case KindCity:
		return cityCodePattern.MatchString(code)
	case KindCityOrCountry:
		return countryCodePattern.MatchString(code) || cityCodePattern.MatchString(code)
	default:
		return false
	}
}

// Search devuelve candidatos para autocompletado de UI, ordenados
// alfabéticamente y limitados a maxSearchResults. kind vacío busca en ambos
// catálogos.
func (r *Resolver) Search(query string, kind Kind) []Entry {
	normalized := normalize(query)
	if normalized == "" {
		return nil
	}

	results := make([]Entry, 0, maxSearchResults)
	for _, entry := range r.entries {
		if kind != "" && kind != KindCityOrCountry && entry.Kind != kind {
			continue
		}
		if strings.Contains(normalize(entry.DisplayName), normalized) {
			results = append(results, entry)
			if len(results) == maxSearchResults {
				break
			}
		}
	}

	return results
}

// substringMatch busca una coincidencia parcial única y estable: recorre las
// claves en orden para que llamadas repetidas devuelvan el mismo resultado.
func substringMatch(table map[string]string, query string) string {
	keys := make([]string, 0, len(table))
	for name := range table {
		if strings.Contains(name, query) {
			keys = append(keys, name)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return table[keys[0]]
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
)

// normalize baja a minúsculas y elimina acentos para comparar nombres.
func normalize(s string) string {
	return accentReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}
