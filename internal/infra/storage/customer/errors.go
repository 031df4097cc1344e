package customer

import "errors"

var (
	// ErrCustomerNotFound is returned when the customer does not exist.
	ErrCustomerNotFound = errors.New("customer.repository: customer not found")

	// ErrVehicleNotFound is returned when the vehicle does not exist.
	ErrVehicleNotFound = errors.New("customer.repository: vehicle not found")

	// ErrBuildQuery is returned when building the SQL statement fails.
	ErrBuildQuery = errors.New("customer.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL statement fails.
	ErrExecQuery = errors.New("customer.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("customer.repository: failed to scan row")
)
