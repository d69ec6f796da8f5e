package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"unimate/internal/models"
)

var (
	ErrContractNotFound  = errors.New("contract not found")
	ErrContractAmbiguous = errors.New("contract lookup matched more than one row")
)

// ContractRepository performs the three contract operations. None of them
// coordinates with another; each is a single round trip.
type ContractRepository interface {
	CreateContract(ctx context.Context, contract models.NewContract) error
	GetContract(ctx context.Context, id string) (models.ContractDetails, error)
	SignContract(ctx context.Context, id string) error
}

// ContractRepo is a sqlx implementation of ContractRepository.
type ContractRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewContractRepo constructs a ContractRepo.
func NewContractRepo(db *sqlx.DB) *ContractRepo {
	return &ContractRepo{db: db, now: time.Now}
}

// CreateContract inserts one contract row.
func (r *ContractRepo) CreateContract(ctx context.Context, contract models.NewContract) error {
	contract, err := contract.Normalize()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO contracts (host_id, student_id, listing_id, terms, status) VALUES ($1, $2, $3, $4, $5)`,
		contract.HostID, contract.StudentID, contract.ListingID, contract.Terms, contract.Status)
	if hasCode(err, foreignKeyViolation) {
		return ErrUnknownReference
	}
	if err != nil {
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

type contractRow struct {
	models.Contract
	HostUsername        *string             `db:"host_username"`
	HostFirstName       string              `db:"host_first_name"`
	HostLastName        string              `db:"host_last_name"`
	HostAvatarURL       string              `db:"host_avatar_url"`
	StudentUsername     *string             `db:"student_username"`
	StudentFirstName    string              `db:"student_first_name"`
	StudentLastName     string              `db:"student_last_name"`
	StudentAvatarURL    string              `db:"student_avatar_url"`
	ListingTitle        string              `db:"listing_title"`
	ListingPrice        float64             `db:"listing_price"`
	ListingLocation     string              `db:"listing_location"`
	ListingHousingRules models.HousingRules `db:"listing_housing_rules"`
}

func (row contractRow) details() models.ContractDetails {
	return models.ContractDetails{
		Contract: row.Contract,
		Host: models.ContractParty{
			ID:        row.HostID,
			Username:  row.HostUsername,
			FirstName: row.HostFirstName,
			LastName:  row.HostLastName,
			AvatarURL: row.HostAvatarURL,
		},
		Student: models.ContractParty{
			ID:        row.StudentID,
			Username:  row.StudentUsername,
			FirstName: row.StudentFirstName,
			LastName:  row.StudentLastName,
			AvatarURL: row.StudentAvatarURL,
		},
		Listing: models.ListingSummary{
			ID:           row.ListingID,
			Title:        row.ListingTitle,
			Price:        row.ListingPrice,
			Location:     row.ListingLocation,
			HousingRules: row.ListingHousingRules,
		},
	}
}

const contractDetailsQuery = `SELECT c.id, c.host_id, c.student_id, c.listing_id, c.terms, c.status, c.signed_at, c.created_at,
        h.username AS host_username, COALESCE(h.first_name, '') AS host_first_name,
        COALESCE(h.last_name, '') AS host_last_name, COALESCE(h.avatar_url, '') AS host_avatar_url,
        s.username AS student_username, COALESCE(s.first_name, '') AS student_first_name,
        COALESCE(s.last_name, '') AS student_last_name, COALESCE(s.avatar_url, '') AS student_avatar_url,
        COALESCE(l.title, '') AS listing_title, COALESCE(l.price, 0) AS listing_price,
        COALESCE(l.location, '') AS listing_location, l.housing_rules AS listing_housing_rules
        FROM contracts c
        LEFT JOIN profiles h ON h.id = c.host_id
        LEFT JOIN profiles s ON s.id = c.student_id
        LEFT JOIN listings l ON l.id = c.listing_id
        WHERE c.id = $1`

// GetContract reads exactly one contract with its parties and listing.
func (r *ContractRepo) GetContract(ctx context.Context, id string) (models.ContractDetails, error) {
	var rows []contractRow
	if err := r.db.SelectContext(ctx, &rows, contractDetailsQuery, id); err != nil {
		return models.ContractDetails{}, fmt.Errorf("select contract: %w", err)
	}
	switch len(rows) {
	case 0:
		return models.ContractDetails{}, ErrContractNotFound
	case 1:
		return rows[0].details(), nil
	default:
		return models.ContractDetails{}, ErrContractAmbiguous
	}
}

// SignContract marks the contract signed now. The prior status is not
// checked: signing a signed or cancelled contract is accepted here.
func (r *ContractRepo) SignContract(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE contracts SET status = $1, signed_at = $2 WHERE id = $3`,
		models.ContractSigned, r.now().UTC(), id)
	if err != nil {
		return fmt.Errorf("sign contract: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrContractNotFound
	}
	return nil
}
