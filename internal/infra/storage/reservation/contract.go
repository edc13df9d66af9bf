package reservation

import (
	"github.com/salonhq/SLN-ReservationService/pkg/txmanager"
)

// DBExecutor общий интерфейс для *sql.DB и *sql.Tx (берётся из txmanager)
type DBExecutor = txmanager.DBExecutor
