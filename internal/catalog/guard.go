package catalog

import (
	"context"
	"fmt"
)

// DeleteOutcome is the result of inspecting or performing a guarded delete.
type DeleteOutcome int

const (
	// DeleteReady means the record exists and nothing depends on it.
	DeleteReady DeleteOutcome = iota
	// DeleteDone means the record was removed.
	DeleteDone
	// DeleteAbsent means the record did not exist; nothing happened.
	DeleteAbsent
	// DeleteBlocked means dependents exist; nothing was removed.
	DeleteBlocked
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteReady:
		return "ready"
	case DeleteDone:
		return "done"
	case DeleteAbsent:
		return "absent"
	case DeleteBlocked:
		return "blocked"
	default:
		return fmt.Sprintf("DeleteOutcome(%d)", int(o))
	}
}

// Deletion carries a delete outcome with the record and whatever depends on it.
type Deletion[P, D any] struct {
	Outcome    DeleteOutcome
	Entity     *P
	Dependents []D
}

const dependentsKey = "dependents"

// InspectDelete loads the record and its dependents for a delete confirmation.
// It never removes anything.
func InspectDelete[P, D any](
	ctx context.Context,
	primary Primary[P],
	dependents func(ctx context.Context) ([]D, error),
) (*Deletion[P, D], error) {
	res, err := Aggregate(ctx, primary, Queries{
		dependentsKey: func(ctx context.Context) (any, error) { return dependents(ctx) },
	})
	if isNotFound(err) {
		return &Deletion[P, D]{Outcome: DeleteAbsent}, nil
	}
	if err != nil {
		return nil, err
	}

	deps := Take[[]D](res.Results, dependentsKey)
	outcome := DeleteReady
	if len(deps) > 0 {
		outcome = DeleteBlocked
	}
	return &Deletion[P, D]{Outcome: outcome, Entity: res.Primary, Dependents: deps}, nil
}

// GuardedDelete removes the record only when nothing depends on it.
// Deleting an absent record is not an error.
func GuardedDelete[P, D any](
	ctx context.Context,
	primary Primary[P],
	dependents func(ctx context.Context) ([]D, error),
	remove func(ctx context.Context) error,
) (*Deletion[P, D], error) {
	d, err := InspectDelete(ctx, primary, dependents)
	if err != nil {
		return nil, err
	}
	if d.Outcome != DeleteReady {
		return d, nil
	}

	if err := remove(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete %s %d: %w", primary.Kind, primary.ID, err)
	}
	d.Outcome = DeleteDone
	return d, nil
}

// noDependents is the dependents query for records nothing can reference.
func noDependents[D any](context.Context) ([]D, error) {
	return nil, nil
}
