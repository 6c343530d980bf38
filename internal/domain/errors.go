package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	ErrNotEnoughBalance = errors.New("not enough balance")
	// ErrVersionConflict условие обновления записи не выполнилось: запись поменял кто-то другой
	// между чтением и записью.
	ErrVersionConflict    = errors.New("version conflict")
	ErrBelowMinInvestment = errors.New("amount below plan minimum")
)

type PlanNotFoundError struct {
	Name string
}

func NewPlanNotFoundError(name string) error {
	return &PlanNotFoundError{Name: name}
}

func (e *PlanNotFoundError) Error() string {
	return fmt.Sprintf("plan %s not found", e.Name)
}
