package report

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Supported report languages
const (
	LangEnglish    = "en"
	LangPortuguese = "pt_BR"
)

// labels maps each English label to its Brazilian Portuguese translation
var labels = map[string]string{
	"SANITARY DRAINAGE SIZING - NBR 8160": "DIMENSIONAMENTO DE ESGOTO SANITÁRIO - NBR 8160",
	"MODEL:":                              "MODELO:",
	"SINKS:":                              "PONTOS DE DESCARGA:",
	"NETWORK:":                            "REDE:",
	"PIPES:":                              "TUBULAÇÕES:",
	"WARNINGS:":                           "AVISOS:",
	"DRAINAGE NETWORK":                    "REDE DE ESGOTO",
	"PIPE LOADS":                          "CARGAS NAS TUBULAÇÕES",
	"File":                                "Arquivo",
	"Schema":                              "Esquema",
	"Elements reached":                    "Elementos alcançados",
	"Sinks":                               "Pontos de descarga",
	"No sink found":                       "Nenhum ponto de descarga encontrado",
	"Id":                                  "Id",
	"Name":                                "Nome",
	"Kind":                                "Tipo",
	"Level":                               "Nível",
	"Base UHC":                            "UHC própria",
	"Accumulated UHC":                     "UHC acumulada",
	"DN":                                  "DN",
	"Slope":                               "Declividade",
	"Pipe":                                "Tubulação",
	"Material":                            "Material",
	"Length (m)":                          "Comprimento (m)",
	"Real slope":                          "Declividade real",
	"Design slope":                        "Declividade de projeto",
	"Start elevation (m)":                 "Cota inicial (m)",
	"End elevation (m)":                   "Cota final (m)",
	"PIPE RUNS":                           "TUBULAÇÕES",
	"Model":                               "Modelo",
	"Suggested DN":                        "DN sugerido",
	"Suggested slope":                     "Declividade sugerida",
	"exceeds table":                       "excede a tabela",
	"%d pipes":                            "%d tubulações",
	"capacity":                            "capacidade",
	"Unnamed":                             "Sem nome",
	"Analysis complete":                   "Análise concluída",
	"Analysis complete with %d warnings":  "Análise concluída com %d avisos",
}

func init() {
	for en, pt := range labels {
		_ = message.SetString(language.English, en, en)
		_ = message.SetString(language.BrazilianPortuguese, en, pt)
	}
}

// NewPrinter returns a printer for "en" or "pt_BR"; anything else prints English
func NewPrinter(lang string) *message.Printer {
	tag := language.English
	if strings.EqualFold(strings.ReplaceAll(lang, "-", "_"), LangPortuguese) {
		tag = language.BrazilianPortuguese
	}
	return message.NewPrinter(tag)
}
