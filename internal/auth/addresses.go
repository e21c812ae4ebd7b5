package auth

import (
	"context"

	"github.com/angelmondragon/barakat-storefront/internal/users"
	"github.com/angelmondragon/barakat-storefront/pkg/validation"
)

// AddAddress appends a new address to the signed-in user as given. Adding a
// default clears the flag on existing entries first. It returns false while
// Anonymous.
func (s *Session) AddAddress(ctx context.Context, input AddressInput) (users.Address, bool, error) {
	if s.user == nil {
		return users.Address{}, false, nil
	}
	if err := validation.Struct(input, "invalid address"); err != nil {
		return users.Address{}, false, err
	}

	next := s.user.Clone()
	address := input.withID(s.newID())
	if address.IsDefault {
		for i := range next.Addresses {
			next.Addresses[i].IsDefault = false
		}
	}
	next.Addresses = append(next.Addresses, address)

	if err := s.saveProfile(ctx, next); err != nil {
		return users.Address{}, false, err
	}
	return address, true, nil
}

// UpdateAddress with IsDefault set only moves the default flag onto the entry
// with the same id; its other fields are left as stored. Otherwise the entry
// is replaced in place and sibling flags are untouched. It returns false when
// Anonymous or when the id is unknown.
func (s *Session) UpdateAddress(ctx context.Context, address users.Address) (bool, error) {
	if s.user == nil {
		return false, nil
	}

	next := s.user.Clone()
	idx := -1
	for i := range next.Addresses {
		if next.Addresses[i].ID == address.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	if address.IsDefault {
		for i := range next.Addresses {
			next.Addresses[i].IsDefault = next.Addresses[i].ID == address.ID
		}
	} else {
		if err := validation.Struct(addressInputOf(address), "invalid address"); err != nil {
			return false, err
		}
		next.Addresses[idx] = address
	}

	if err := s.saveProfile(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveAddress deletes the address with id. When the default is removed the
// first remaining address becomes default.
func (s *Session) RemoveAddress(ctx context.Context, id string) (bool, error) {
	if s.user == nil {
		return false, nil
	}

	next := s.user.Clone()
	kept := make([]users.Address, 0, len(next.Addresses))
	var removed *users.Address
	for _, a := range next.Addresses {
		if a.ID == id && removed == nil {
			a := a
			removed = &a
			continue
		}
		kept = append(kept, a)
	}
	if removed == nil {
		return false, nil
	}
	if removed.IsDefault && len(kept) > 0 {
		kept[0].IsDefault = true
	}
	next.Addresses = kept

	if err := s.saveProfile(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// saveProfile persists the session copy and then mirrors it into the account
// list. A failed session write leaves both the session and the list as they
// were; a failed mirror leaves the list one change behind until the next
// address write.
func (s *Session) saveProfile(ctx context.Context, next users.User) error {
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	return s.accounts.UpdateProfile(ctx, next)
}

func addressInputOf(a users.Address) AddressInput {
	return AddressInput{
		Title:     a.Title,
		FullName:  a.FullName,
		Phone:     a.Phone,
		City:      a.City,
		Street:    a.Street,
		Building:  a.Building,
		Apartment: a.Apartment,
		IsDefault: a.IsDefault,
	}
}
