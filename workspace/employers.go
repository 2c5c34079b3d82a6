package workspace

import (
	"context"

	"bneibrit/bizerror"
	"bneibrit/common"
	"bneibrit/domain/benefits"
	"bneibrit/domain/contract"
	"bneibrit/domain/employer"

	"github.com/fundwit/go-commons/types"
)

// Employers returns the employers in creation order with benefits computed for now.
func (w *Workspace) Employers() []benefits.EmployerWithBenefits {
	w.mu.RLock()
	defer w.mu.RUnlock()
	now := w.now()
	out := make([]benefits.EmployerWithBenefits, 0, len(w.employers))
	for _, e := range w.employers {
		out = append(out, benefits.WithBenefits(e, w.snapshot.Benefits, now))
	}
	return out
}

// Employer returns one employer with benefits computed for now.
func (w *Workspace) Employer(id types.ID) (*benefits.EmployerWithBenefits, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.findEmployer(id)
	if !ok {
		return nil, bizerror.ErrUnknownEmployer
	}
	found := benefits.WithBenefits(e, w.snapshot.Benefits, w.now())
	return &found, nil
}

func (w *Workspace) TotalBalance() float64 {
	return benefits.TotalBalance(w.Employers())
}

// AddEmployer stores the employer before it becomes visible.
func (w *Workspace) AddEmployer(ctx context.Context, c employer.Creation) (*employer.Employer, error) {
	now := w.now()
	if err := employer.ValidateStartDate(c.StartDate, now); err != nil {
		return nil, &common.ErrBadParam{Cause: err}
	}
	e := employer.Employer{
		ID:            w.ids.Next(),
		Name:          c.Name,
		MonthlySalary: c.MonthlySalary,
		HoursPerWeek:  c.HoursPerWeek,
		StartDate:     c.StartDate,
		CreateTime:    now,
	}
	if err := w.store.CreateEmployer(ctx, &e); err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.employers = append(w.employers, e)
	w.mu.Unlock()
	return &e, nil
}

func (w *Workspace) UpdateEmployer(id types.ID, u employer.Update) (*employer.Employer, error) {
	if u.StartDate != nil {
		if err := employer.ValidateStartDate(*u.StartDate, w.now()); err != nil {
			return nil, &common.ErrBadParam{Cause: err}
		}
	}

	w.mu.Lock()
	var updated *employer.Employer
	for i, e := range w.employers {
		if e.ID == id {
			next := u.Apply(e)
			w.employers[i] = next
			updated = &next
			break
		}
	}
	w.mu.Unlock()
	if updated == nil {
		return nil, bizerror.ErrUnknownEmployer
	}

	if len(u.Fields()) > 0 {
		w.persist("update employer", func(ctx context.Context) error {
			_, err := w.store.UpdateEmployer(ctx, id, u)
			return err
		})
	}
	return updated, nil
}

// ContractConfig returns the stored config or the default one.
func (w *Workspace) ContractConfig(employerID types.ID) (contract.Config, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if _, ok := w.findEmployer(employerID); !ok {
		return contract.Config{}, bizerror.ErrUnknownEmployer
	}
	if c, ok := w.contracts[employerID]; ok {
		return c, nil
	}
	return contract.Default(employerID), nil
}

func (w *Workspace) UpdateContractConfig(c contract.Config) error {
	if err := contract.Validate(c); err != nil {
		return err
	}

	w.mu.Lock()
	if _, ok := w.findEmployer(c.EmployerID); !ok {
		w.mu.Unlock()
		return bizerror.ErrUnknownEmployer
	}
	w.contracts[c.EmployerID] = c
	w.mu.Unlock()

	w.persist("update contract config", func(ctx context.Context) error {
		stored, err := w.store.UpsertContractConfig(ctx, c)
		if err != nil {
			return err
		}
		w.mu.Lock()
		if current, ok := w.contracts[c.EmployerID]; ok && current == c {
			w.contracts[c.EmployerID] = *stored
		}
		w.mu.Unlock()
		return nil
	})
	return nil
}
