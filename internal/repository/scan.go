package repository

import (
	"encoding/json"
	"fmt"

	dbpostgres "internhub/internal/database/postgres"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func mapScanErr(err error) error {
	if err == nil {
		return nil
	}
	if dbpostgres.IsNoRows(err) {
		return ErrNotFound
	}
	return err
}

func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if dbpostgres.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func marshalJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal json column: %w", err)
	}
	return string(b), nil
}

func unmarshalJSON(raw []byte, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal json column: %w", err)
	}
	return nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
