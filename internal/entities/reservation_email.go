package entities

type ReservationEmailData struct {
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	ReservationCode    string
	CarLabel           string
	StartDateFormatted string
	EndDateFormatted   string
	TotalPrice         float64
	CurrentYear        int
}
