package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)

	// List returns every employee ordered by first then last name
	List(ctx context.Context) ([]Employee, error)

	// ExistsByName matches first and last name exactly, ignoring excludeID
	ExistsByName(ctx context.Context, firstName, lastName string, excludeID *string) (bool, error)

	Update(ctx context.Context, e Employee) error
	Delete(ctx context.Context, id string) error
}
