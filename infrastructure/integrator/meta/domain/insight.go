package metadomain

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// AdAccountInsight é o retorno de /act_{id}/insights; a API envia números como texto.
type AdAccountInsight struct {
	AccountID    string   `json:"account_id"`
	Name         string   `json:"account_name"`
	Spend        string   `json:"spend"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	CPC          string   `json:"cpc"`
	CTR          string   `json:"ctr"`
	Actions      []Action `json:"actions"`
	ActionValues []Action `json:"action_values"`
	PurchaseRoas []Action `json:"purchase_roas"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
}

// PurchaseActionTypes em ordem de preferência.
var PurchaseActionTypes = []string{
	"omni_purchase",
	"purchase",
	"offsite_conversion.fb_pixel_purchase",
}

// FindAction devolve o valor do primeiro tipo de ação encontrado.
func FindAction(actions []Action, types ...string) (string, bool) {
	for _, t := range types {
		for _, action := range actions {
			if action.ActionType == t {
				return action.Value, true
			}
		}
	}
	return "", false
}

// AccountMetrics mantém os valores como texto; a conversão acontece na normalização.
type AccountMetrics struct {
	AccountID   string
	Name        string
	Spend       string
	Revenue     string
	Purchases   string
	Roas        string
	CPC         string
	CTR         string
	Clicks      string
	Impressions string
}
