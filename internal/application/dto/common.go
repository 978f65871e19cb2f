package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PeriodDTO rango de fechas aplicado a una consulta (YYYY-MM-DD, vacío = abierto).
type PeriodDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}
