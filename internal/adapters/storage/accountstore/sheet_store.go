package accountstore

import (
	"context"

	"ubase/internal/adapters/storage"
	domain "ubase/internal/domain/account"
)

// SheetStore implements Store over the tabular table client.
type SheetStore struct {
	tables *storage.TableClient
}

// NewSheetStore creates a new SheetStore.
func NewSheetStore(tables *storage.TableClient) *SheetStore {
	return &SheetStore{tables: tables}
}

// List returns every account in stored order. Rows with a blank username
// are skipped.
func (s *SheetStore) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.tables.Read(ctx, storage.TableUsers)
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		if row["username"] == "" {
			continue
		}
		accounts = append(accounts, decode(row))
	}
	return accounts, nil
}

// GetByUsername returns the account with the given username.
// POST: Returns ErrNotFound if no row matches
func (s *SheetStore) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	rows, err := s.tables.Read(ctx, storage.TableUsers)
	if err != nil {
		return domain.Account{}, err
	}
	for _, row := range rows {
		if row["username"] == username && username != "" {
			return decode(row), nil
		}
	}
	return domain.Account{}, ErrNotFound
}

// Append adds one account row.
// PRE: a has been validated and its username is not taken
func (s *SheetStore) Append(ctx context.Context, a domain.Account) error {
	rows, err := s.tables.Read(ctx, storage.TableUsers)
	if err != nil {
		return err
	}
	return s.tables.Write(ctx, storage.TableUsers, append(rows, encode(a)))
}

// Update replaces the row matching a.Username.
// POST: Returns ErrNotFound if no row matches
func (s *SheetStore) Update(ctx context.Context, a domain.Account) error {
	rows, err := s.tables.Read(ctx, storage.TableUsers)
	if err != nil {
		return err
	}
	found := false
	out := make([]storage.Row, len(rows))
	for i, row := range rows {
		if row["username"] != a.Username {
			out[i] = row
			continue
		}
		found = true
		out[i] = encode(a)
	}
	if !found {
		return ErrNotFound
	}
	return s.tables.Write(ctx, storage.TableUsers, out)
}

// Delete removes the row matching username.
// POST: Returns ErrNotFound if no row matches
func (s *SheetStore) Delete(ctx context.Context, username string) error {
	rows, err := s.tables.Read(ctx, storage.TableUsers)
	if err != nil {
		return err
	}
	kept := make([]storage.Row, 0, len(rows))
	for _, row := range rows {
		if row["username"] != username {
			kept = append(kept, row)
		}
	}
	if len(kept) == len(rows) {
		return ErrNotFound
	}
	return s.tables.Write(ctx, storage.TableUsers, kept)
}

func encode(a domain.Account) storage.Row {
	return storage.Row{
		"username":      a.Username,
		"name":          a.Name,
		"password_hash": a.PasswordHash,
		"role":          a.Role,
	}
}

func decode(row storage.Row) domain.Account {
	return domain.Account{
		Username:     row["username"],
		Name:         row["name"],
		PasswordHash: row["password_hash"],
		Role:         domain.NormalizeRole(row["role"]),
	}
}
