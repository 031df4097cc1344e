package appointment

import (
	"github.com/hangarapp/hangar-booking/pkg/dbmetrics"
)

// Reuse the dbmetrics executor interfaces so the repository works over
// *sql.DB, *dbmetrics.DB and open transactions alike.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
