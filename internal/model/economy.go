package model

// Bet is a single-slot commitment: points staked against future check-in
// behavior for a conditional payout.
type Bet struct {
	Amount    int `json:"amount"`
	Potential int `json:"potential"`
}

// Savings is a single-slot deposit commitment with a goal payout.
type Savings struct {
	Amount    int    `json:"amount"`
	Goal      int    `json:"goal"`
	StartedOn string `json:"started_on"`
}
