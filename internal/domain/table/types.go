package table

type Type string

const (
	TypeRegular Type = "regular"
	TypeBar     Type = "bar"
	TypeRound   Type = "round"
	TypePrivate Type = "private"
)

type OperationalStatus string

const (
	StatusNormal      OperationalStatus = "normal"
	StatusMaintenance OperationalStatus = "maintenance"
)
