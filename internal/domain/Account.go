package domain

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

// Account é uma conta do portfólio: conta de anúncio, loja ou ambas.
type Account struct {
	ID             string        `json:"id"`
	ExternalID     string        `json:"external_id"`
	Name           string        `json:"name"`
	Nickname       *string       `json:"nickname"`
	BrandName      string        `json:"brand_name"`
	CNPJ           *string       `json:"cnpj"`
	Pod            string        `json:"pod"`
	Monitored      bool          `json:"monitored"`
	Origin         string        `json:"origin"`
	EncryptedToken *string       `json:"-"`
	Status         AccountStatus `json:"status"`
}

// DisplayName prioriza o apelido, depois a marca e por último o nome da conta.
func (a Account) DisplayName() string {
	if a.Nickname != nil && *a.Nickname != "" {
		return *a.Nickname
	}
	if a.BrandName != "" {
		return a.BrandName
	}
	return a.Name
}

// AccountFilter delimita quais contas participam de uma atualização.
type AccountFilter struct {
	Pod           string
	Origin        string
	Status        AccountStatus
	MonitoredOnly bool
	RequireCNPJ   bool
}
