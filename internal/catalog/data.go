package catalog

// catalogRecord es una entrada cruda de las tablas embebidas. Los alias cubren
// nombres en inglés, abreviaturas y variantes ortográficas en español.
type catalogRecord struct {
	code    string
	name    string
	aliases []string
}

// Códigos de país SIRE. Son códigos propios del sistema SIRE, derivados pero
// NO iguales a ISO-3166-1 numérico (ej: Estados Unidos es 249 en SIRE y 840
// en ISO). El registro de cumplimiento almacena siempre el código SIRE.
var countryRecords = []catalogRecord{
	{"169", "Colombia", []string{"CO", "COL"}},
	{"249", "Estados Unidos", []string{"United States", "United States of America", "USA", "US", "EEUU", "EE.UU.", "Estados Unidos de America"}},
	{"105", "Brasil", []string{"Brazil", "BR", "BRA"}},
	{"63", "Argentina", []string{"AR", "ARG"}},
	{"245", "España", []string{"Spain", "ES", "ESP"}},
	{"493", "México", []string{"Mexico", "MX", "MEX", "Mejico"}},
	{"117", "Canadá", []string{"Canada", "CA", "CAN"}},
	{"265", "Francia", []string{"France", "FR", "FRA"}},
	{"23", "Alemania", []string{"Germany", "DE", "DEU", "Deutschland"}},
	{"386", "Italia", []string{"Italy", "IT", "ITA"}},
	{"300", "Reino Unido", []string{"United Kingdom", "UK", "GB", "GBR", "Gran Bretaña", "Inglaterra", "England"}},
	{"211", "Chile", []string{"CL", "CHL"}},
	{"239", "Ecuador", []string{"EC", "ECU"}},
	{"589", "Perú", []string{"Peru", "PE", "PER"}},
	{"850", "Venezuela", []string{"VE", "VEN"}},
	{"845", "Uruguay", []string{"UY", "URY"}},
	{"586", "Paraguay", []string{"PY", "PRY"}},
	{"97", "Bolivia", []string{"BO", "BOL"}},
	{"580", "Panamá", []string{"Panama", "PA", "PAN"}},
	{"196", "Costa Rica", []string{"CR", "CRI"}},
	{"573", "Países Bajos", []string{"Netherlands", "Holanda", "Holland", "NL", "NLD", "Paises Bajos"}},
	{"767", "Suiza", []string{"Switzerland", "CH", "CHE"}},
	{"69", "Australia", []string{"AU", "AUS"}},
	{"215", "China", []string{"CN", "CHN"}},
	{"399", "Japón", []string{"Japan", "JP", "JPN", "Japon"}},
	{"361", "India", []string{"IN", "IND"}},
	{"607", "Portugal", []string{"PT", "PRT"}},
	{"676", "Rusia", []string{"Russia", "RU", "RUS", "Federacion Rusa"}},
	{"383", "Israel", []string{"IL", "ISR"}},
	{"190", "Corea del Sur", []string{"South Korea", "Korea", "KR", "KOR"}},
	{"87", "Bélgica", []string{"Belgium", "BE", "BEL"}},
	{"764", "Suecia", []string{"Sweden", "SE", "SWE"}},
	{"538", "Noruega", []string{"Norway", "NO", "NOR"}},
	{"232", "Dinamarca", []string{"Denmark", "DK", "DNK"}},
	{"53", "Austria", []string{"AT", "AUT"}},
	{"375", "Irlanda", []string{"Ireland", "IE", "IRL"}},
	{"601", "Polonia", []string{"Poland", "PL", "POL"}},
	{"287", "Grecia", []string{"Greece", "GR", "GRC"}},
	{"501", "Nueva Zelanda", []string{"New Zealand", "NZ", "NZL"}},
	{"317", "Guatemala", []string{"GT", "GTM"}},
	{"345", "Honduras", []string{"HN", "HND"}},
	{"242", "El Salvador", []string{"SV", "SLV"}},
	{"521", "Nicaragua", []string{"NI", "NIC"}},
	{"229", "República Dominicana", []string{"Dominican Republic", "DO", "DOM", "Republica Dominicana"}},
	{"199", "Cuba", []string{"CU", "CUB"}},
	{"873", "Turquía", []string{"Turkey", "TR", "TUR", "Turquia"}},
}

// Municipios DIVIPOLA (códigos de 5 dígitos, con cero inicial donde aplica).
var cityRecords = []catalogRecord{
	{"11001", "Bogotá D.C.", []string{"Bogota", "Bogota D.C.", "Santafe de Bogota"}},
	{"05001", "Medellín", []string{"Medellin"}},
	{"76001", "Cali", []string{"Santiago de Cali"}},
	{"08001", "Barranquilla", nil},
	{"13001", "Cartagena de Indias", []string{"Cartagena"}},
	{"47001", "Santa Marta", nil},
	{"68001", "Bucaramanga", nil},
	{"54001", "Cúcuta", []string{"Cucuta", "San Jose de Cucuta"}},
	{"66001", "Pereira", nil},
	{"17001", "Manizales", nil},
	{"63001", "Armenia", nil},
	{"73001", "Ibagué", []string{"Ibague"}},
	{"50001", "Villavicencio", nil},
	{"52001", "Pasto", []string{"San Juan de Pasto"}},
	{"19001", "Popayán", []string{"Popayan"}},
	{"23001", "Montería", []string{"Monteria"}},
	{"41001", "Neiva", nil},
	{"44001", "Riohacha", nil},
	{"20001", "Valledupar", nil},
	{"15001", "Tunja", nil},
	{"88001", "San Andrés", []string{"San Andres Isla", "Isla de San Andres"}},
	{"88564", "Providencia", []string{"Providencia y Santa Catalina"}},
	{"91001", "Leticia", nil},
	{"18001", "Florencia", nil},
	{"85001", "Yopal", nil},
	{"27001", "Quibdó", []string{"Quibdo"}},
	{"70001", "Sincelejo", nil},
	{"68669", "San Andrés (Santander)", nil},
	{"23670", "San Andrés de Sotavento", nil},
	{"52835", "San Andrés de Tumaco", []string{"Tumaco"}},
	{"05658", "San Andrés de Cuerquia", nil},
}

// cityOverrides resuelve nombres ambiguos antes de cualquier búsqueda
// genérica. "San Andrés" a secas siempre es la isla (88001), nunca los
// homónimos continentales.
var cityOverrides = map[string]string{
	"san andres":      "88001",
	"san andres isla": "88001",
	"providencia":     "88564",
}
