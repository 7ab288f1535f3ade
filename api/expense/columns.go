package expense

import "strings"

// Recognized header keywords per canonical field, in priority order.
// Exact match is tried before substring match so a short keyword like
// "Total" cannot shadow a longer unrelated header on the first pass.
var (
	branchKeywords     = []string{"Filial", "Unidade", "Loja"}
	groupKeywords      = []string{"Grupo", "Group"}
	subgroupKeywords   = []string{"Subgrupo", "Sub Group"}
	costCenterKeywords = []string{"Centro", "Centro de Custo", "Cost Center", "CC"}
	chartKeywords      = []string{"Plano de Contas", "Plano", "Conta Contabil"}
	vendorKeywords     = []string{"Fornecedor", "Vendor", "Participante"}
	titleKeywords      = []string{"Titulo", "Descrição", "Historico", "Item"}
	dateKeywords       = []string{"Data", "Vencimento", "Pagamento", "Emissao"}
	amountKeywords     = []string{"Valor", "Total", "Liquido", "Pago", "Vlr"}
	statusKeywords     = []string{"Status", "Situacao"}
)

// ResolveColumn scans the record's headers for a case-insensitive exact
// match against each keyword in order, then falls back to a substring scan.
// The first hit wins; header order within the record breaks ties.
func ResolveColumn(rec RawRecord, keywords []string) (interface{}, bool) {
	for _, kw := range keywords {
		for _, h := range rec.Headers {
			if strings.EqualFold(strings.TrimSpace(h), kw) {
				return rec.Cells[h], true
			}
		}
	}
	for _, kw := range keywords {
		lkw := strings.ToLower(kw)
		for _, h := range rec.Headers {
			if strings.Contains(strings.ToLower(h), lkw) {
				return rec.Cells[h], true
			}
		}
	}
	return nil, false
}

// resolveString resolves a field and renders it as trimmed text, returning
// fallback when the column is absent or empty.
func resolveString(rec RawRecord, keywords []string, fallback string) string {
	v, ok := ResolveColumn(rec, keywords)
	if !ok {
		return fallback
	}
	s := strings.TrimSpace(CellText(v))
	if s == "" {
		return fallback
	}
	return s
}
