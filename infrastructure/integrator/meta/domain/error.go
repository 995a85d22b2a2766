package metadomain

import "fmt"

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorResponse) IsTokenExpired() bool {
	// 190 é token inválido/expirado; 460, 463 e 467 são subcódigos de sessão
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// APIError é o erro devolvido pelo cliente quando a Graph API responde com falha.
type APIError struct {
	StatusCode int
	Details    ErrorDetails
}

func NewAPIError(statusCode int, resp *ErrorResponse) *APIError {
	return &APIError{StatusCode: statusCode, Details: resp.Error}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("meta api: status %d código %d: %s", e.StatusCode, e.Details.Code, e.Details.Message)
}

func (e *APIError) IsTokenExpired() bool {
	return (&ErrorResponse{Error: e.Details}).IsTokenExpired()
}

func (e *APIError) IsPermissionDenied() bool {
	return e.Details.Code == 10 || (e.Details.Code >= 200 && e.Details.Code < 300)
}

func (e *APIError) IsInvalidID() bool {
	return e.Details.Code == 100 && (e.Details.ErrorSubcode == 33 || e.StatusCode == 404)
}

func (e *APIError) IsRateLimited() bool {
	switch e.Details.Code {
	case 4, 17, 32, 613:
		return true
	}
	return false
}

// IsBusinessFailure indica falhas da conta (permissão, id, token) e não de transporte.
func (e *APIError) IsBusinessFailure() bool {
	return e.IsTokenExpired() || e.IsPermissionDenied() || e.IsInvalidID()
}

func (e *APIError) Sentinel() string {
	switch {
	case e.IsTokenExpired():
		return "Access token expired"
	case e.IsPermissionDenied():
		return "Missing Permissions"
	case e.IsInvalidID():
		return "Incorrect ID"
	case e.IsRateLimited():
		return "Rate limit reached"
	}
	return "Could not retrieve"
}

func (e *APIError) Code() string {
	switch {
	case e.IsTokenExpired():
		return "token_expired"
	case e.IsPermissionDenied():
		return "permission_denied"
	case e.IsInvalidID():
		return "invalid_id"
	case e.IsRateLimited():
		return "rate_limited"
	}
	return "upstream_error"
}

// NoDataError indica que a conta não teve entrega no período.
type NoDataError struct {
	AccountID string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("meta api: sem dados para a conta %s", e.AccountID)
}

func (e *NoDataError) Sentinel() string { return "No data for period" }

func (e *NoDataError) Code() string { return "no_data" }
