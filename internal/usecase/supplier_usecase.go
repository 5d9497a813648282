package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type SupplierUsecase struct {
	tx           repo.TransactionManager
	supplierRepo repo.SupplierRepository
	contactRepo  repo.SupplierContactRepository
}

// DI
func NewSupplierUsecase(
	tx repo.TransactionManager,
	supplierRepo repo.SupplierRepository,
	contactRepo repo.SupplierContactRepository,
) *SupplierUsecase {
	return &SupplierUsecase{
		tx:           tx,
		supplierRepo: supplierRepo,
		contactRepo:  contactRepo,
	}
}

type SupplierInput struct {
	Name          string
	Address       string
	ContactPerson string
	PhoneNumber   string
}

type SupplierOutput struct {
	model.Supplier
	ContactPerson string `json:"contact_person,omitempty"`
	PhoneNumber   string `json:"phone_number,omitempty"`
}

type SupplierListOutput struct {
	Items []SupplierOutput `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func (in SupplierInput) hasContact() bool {
	return strings.TrimSpace(in.ContactPerson) != "" || strings.TrimSpace(in.PhoneNumber) != ""
}

func (u *SupplierUsecase) CreateSupplier(ctx context.Context, in SupplierInput) (SupplierOutput, error) {
	if strings.TrimSpace(in.Name) == "" {
		return SupplierOutput{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	var out SupplierOutput

	// 仕入先＋連絡先は1トランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		created, err := r.Suppliers().Create(ctx, model.Supplier{
			Name:    strings.TrimSpace(in.Name),
			Address: in.Address,
		})
		if err != nil {
			return fromRepoErr(err)
		}

		out = SupplierOutput{Supplier: created}

		// 両方空なら連絡先行は作らない
		if in.hasContact() {
			contact := model.SupplierContact{
				SupplierID:    created.ID,
				ContactPerson: strings.TrimSpace(in.ContactPerson),
				PhoneNumber:   strings.TrimSpace(in.PhoneNumber),
			}
			if err := r.SupplierContacts().Create(ctx, contact); err != nil {
				return fromRepoErr(err)
			}
			out.ContactPerson = contact.ContactPerson
			out.PhoneNumber = contact.PhoneNumber
		}
		return nil
	})

	if err != nil {
		return SupplierOutput{}, err
	}
	return out, nil
}

// 連絡先は「両方空なら何もしない」。既存行の削除もしない
func (u *SupplierUsecase) UpdateSupplier(ctx context.Context, supplierID int64, in SupplierInput) error {
	if supplierID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid supplier id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		err := r.Suppliers().Update(ctx, model.Supplier{
			ID:      supplierID,
			Name:    strings.TrimSpace(in.Name),
			Address: in.Address,
		})
		if err != nil {
			return fromRepoErr(err)
		}

		if !in.hasContact() {
			return nil
		}

		contact := model.SupplierContact{
			SupplierID:    supplierID,
			ContactPerson: strings.TrimSpace(in.ContactPerson),
			PhoneNumber:   strings.TrimSpace(in.PhoneNumber),
		}

		_, err = r.SupplierContacts().FindBySupplierID(ctx, supplierID)
		if errors.Is(err, repo.ErrNotFound) {
			return fromRepoErr(r.SupplierContacts().Create(ctx, contact))
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return fromRepoErr(r.SupplierContacts().Update(ctx, contact))
	})
}

// 連絡先→仕入先の順で同一トランザクション内で消す
func (u *SupplierUsecase) DeleteSupplier(ctx context.Context, supplierID int64) error {
	if supplierID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid supplier id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.SupplierContacts().DeleteBySupplierID(ctx, supplierID); err != nil {
			return fromRepoErr(err)
		}
		return fromRepoErr(r.Suppliers().Delete(ctx, supplierID))
	})
}

func (u *SupplierUsecase) GetSupplier(ctx context.Context, supplierID int64) (SupplierOutput, error) {
	if supplierID <= 0 {
		return SupplierOutput{}, NewHTTPError(http.StatusBadRequest, "invalid supplier id")
	}

	s, err := u.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return SupplierOutput{}, fromRepoErr(err)
	}

	out := SupplierOutput{Supplier: s}

	contact, err := u.contactRepo.FindBySupplierID(ctx, supplierID)
	if err == nil {
		out.ContactPerson = contact.ContactPerson
		out.PhoneNumber = contact.PhoneNumber
	} else if !errors.Is(err, repo.ErrNotFound) {
		return SupplierOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return out, nil
}

func (u *SupplierUsecase) ListSuppliers(ctx context.Context, page int, limit int) (SupplierListOutput, error) {
	if page < 1 {
		return SupplierListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return SupplierListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	suppliers, total, err := u.supplierRepo.List(ctx, page, limit)
	if err != nil {
		return SupplierListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]SupplierOutput, 0, len(suppliers))
	for _, s := range suppliers {
		item := SupplierOutput{Supplier: s}
		contact, err := u.contactRepo.FindBySupplierID(ctx, s.ID)
		if err == nil {
			item.ContactPerson = contact.ContactPerson
			item.PhoneNumber = contact.PhoneNumber
		} else if !errors.Is(err, repo.ErrNotFound) {
			return SupplierListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		items = append(items, item)
	}

	return SupplierListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}
