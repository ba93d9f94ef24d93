package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"rental-marketplace/internal/domain"
	"rental-marketplace/internal/domain/model"
	"rental-marketplace/internal/domain/ports/repository"
)

var _ repository.PropertyRepository = (*propertyRepo)(nil)

type propertyRepo struct{ pool *pgxpool.Pool }

func NewPropertyRepo(pool *pgxpool.Pool) *propertyRepo {
	return &propertyRepo{pool: pool}
}

const propertyColumns = `id, code, owner_id, title, description, property_type, property_for, address, city, state, pincode, locality, landmark, bedrooms, bathrooms, built_up_area, area_unit, price, currency, price_type, security_deposit, maintenance_charge, furnishing_status, available_from, preferred_tenant, contact_name, contact_phone, contact_email, contact_whatsapp, status, is_active, is_featured, views, inquiries, created_at, updated_at`

func scanProperty(row pgx.Row) (*model.Property, error) {
	p := &model.Property{}
	if err := row.Scan(&p.ID, &p.Code, &p.OwnerID, &p.Title, &p.Description, &p.PropertyType, &p.PropertyFor, &p.Address, &p.City, &p.State, &p.Pincode, &p.Locality, &p.Landmark, &p.Bedrooms, &p.Bathrooms, &p.BuiltUpArea, &p.AreaUnit, &p.Price, &p.Currency, &p.PriceType, &p.SecurityDeposit, &p.MaintenanceCharge, &p.FurnishingStatus, &p.AvailableFrom, &p.PreferredTenant, &p.Contact.Name, &p.Contact.Phone, &p.Contact.Email, &p.Contact.WhatsApp, &p.Status, &p.IsActive, &p.IsFeatured, &p.Views, &p.Inquiries, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return p, nil
}

func (r *propertyRepo) Save(ctx context.Context, tx repository.Tx, p *model.Property) error {
	const q = `
INSERT INTO properties (
  owner_id, title, description, property_type, property_for, address, city, state, pincode, locality, landmark, bedrooms, bathrooms, built_up_area, area_unit, price, currency, price_type, security_deposit, maintenance_charge, furnishing_status, available_from, preferred_tenant, contact_name, contact_phone, contact_email, contact_whatsapp, status, is_active, is_featured, views, inquiries, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34)
RETURNING id;`

	row, err := pickRow(ctx, r.pool, tx, q, p.OwnerID, p.Title, p.Description, p.PropertyType, p.PropertyFor, p.Address, p.City, p.State, p.Pincode, p.Locality, p.Landmark, p.Bedrooms, p.Bathrooms, p.BuiltUpArea, p.AreaUnit, p.Price, p.Currency, p.PriceType, p.SecurityDeposit, p.MaintenanceCharge, p.FurnishingStatus, p.AvailableFrom, p.PreferredTenant, p.Contact.Name, p.Contact.Phone, p.Contact.Email, p.Contact.WhatsApp, p.Status, p.IsActive, p.IsFeatured, p.Views, p.Inquiries, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}
	if err := row.Scan(&p.ID); err != nil {
		return domain.ErrOperationFailed
	}

	// Public listing code derives from the generated id.
	p.Code = fmt.Sprintf("PROP%06d", p.ID)
	if _, err := execSQL(ctx, r.pool, tx, `UPDATE properties SET code=$2 WHERE id=$1;`, p.ID, p.Code); err != nil {
		return domain.ErrOperationFailed
	}

	for _, a := range p.Amenities {
		if _, err := execSQL(ctx, r.pool, tx, `INSERT INTO property_amenities (property_id, amenity) VALUES ($1,$2);`, p.ID, a); err != nil {
			return domain.ErrOperationFailed
		}
	}
	for i := range p.Images {
		img := &p.Images[i]
		img.IsPrimary = i == 0
		if err := r.AddImage(ctx, tx, p.ID, img); err != nil {
			return err
		}
	}
	return nil
}

func (r *propertyRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Property, error) {
	q := `SELECT ` + propertyColumns + ` FROM properties WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	p, err := scanProperty(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadAmenities(ctx, tx, p); err != nil {
		return nil, err
	}
	if err := r.loadImages(ctx, tx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *propertyRepo) loadAmenities(ctx context.Context, tx repository.Tx, p *model.Property) error {
	rows, err := queryRows(ctx, r.pool, tx, `SELECT amenity FROM property_amenities WHERE property_id=$1;`, p.ID)
	if err != nil {
		return domain.ErrOperationFailed
	}
	defer rows.Close()
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return domain.ErrReadDatabaseRow
		}
		p.Amenities = append(p.Amenities, a)
	}
	return nil
}

func (r *propertyRepo) loadImages(ctx context.Context, tx repository.Tx, p *model.Property) error {
	rows, err := queryRows(ctx, r.pool, tx, `SELECT id, url, public_id, caption, format, width, height, bytes, is_primary, created_at FROM property_images WHERE property_id=$1 ORDER BY is_primary DESC, id ASC;`, p.ID)
	if err != nil {
		return domain.ErrOperationFailed
	}
	defer rows.Close()
	for rows.Next() {
		img := model.PropertyImage{}
		if err := rows.Scan(&img.ID, &img.URL, &img.PublicID, &img.Caption, &img.Format, &img.Width, &img.Height, &img.Bytes, &img.IsPrimary, &img.CreatedAt); err != nil {
			return domain.ErrReadDatabaseRow
		}
		p.Images = append(p.Images, img)
	}
	return nil
}

func (r *propertyRepo) List(ctx context.Context, tx repository.Tx, f repository.PropertyFilter) ([]*model.Property, int, error) {
	where := []string{"is_active = TRUE", "status = 'approved'"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.City != "" {
		where = append(where, "LOWER(city) = LOWER("+arg(f.City)+")")
	}
	if f.PropertyType != "" {
		where = append(where, "property_type = "+arg(f.PropertyType))
	}
	if f.PropertyFor != "" {
		where = append(where, "property_for = "+arg(f.PropertyFor))
	}
	if f.Bedrooms > 0 {
		where = append(where, "bedrooms = "+arg(f.Bedrooms))
	}
	if f.MinPrice > 0 {
		where = append(where, "price >= "+arg(f.MinPrice))
	}
	if f.MaxPrice > 0 {
		where = append(where, "price <= "+arg(f.MaxPrice))
	}
	if f.FurnishingStatus != "" {
		where = append(where, "furnishing_status = "+arg(f.FurnishingStatus))
	}
	if f.FeaturedOnly {
		where = append(where, "is_featured = TRUE")
	}
	if f.Query != "" {
		p := arg("%" + f.Query + "%")
		where = append(where, "(title ILIKE "+p+" OR locality ILIKE "+p+" OR city ILIKE "+p+")")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	cond := strings.Join(where, " AND ")

	cq := `SELECT COUNT(*) FROM properties WHERE ` + cond + `;`
	row, err := pickRow(ctx, r.pool, tx, cq, args...)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := row.Scan(&total); err != nil {
		return nil, 0, domain.ErrReadDatabaseRow
	}

	q := `SELECT ` + propertyColumns + ` FROM properties WHERE ` + cond +
		` ORDER BY is_featured DESC, created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(f.Offset) + `;`
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, 0, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	for _, p := range out {
		if err := r.loadImages(ctx, tx, p); err != nil {
			return nil, 0, err
		}
	}
	return out, total, nil
}

func (r *propertyRepo) ListByOwner(ctx context.Context, tx repository.Tx, ownerID int64) ([]*model.Property, error) {
	q := `SELECT ` + propertyColumns + ` FROM properties WHERE owner_id=$1 ORDER BY created_at DESC;`
	rows, err := queryRows(ctx, r.pool, tx, q, ownerID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *propertyRepo) Update(ctx context.Context, tx repository.Tx, p *model.Property) error {
	const q = `
UPDATE properties SET
  title=$2, description=$3, property_type=$4, property_for=$5, address=$6, city=$7, state=$8, pincode=$9, locality=$10, landmark=$11, bedrooms=$12, bathrooms=$13, built_up_area=$14, area_unit=$15, price=$16, price_type=$17, security_deposit=$18, maintenance_charge=$19, furnishing_status=$20, available_from=$21, preferred_tenant=$22, contact_name=$23, contact_phone=$24, contact_email=$25, contact_whatsapp=$26, is_active=$27, is_featured=$28, updated_at=NOW()
WHERE id=$1;`
	cmd, err := execSQL(ctx, r.pool, tx, q, p.ID, p.Title, p.Description, p.PropertyType, p.PropertyFor, p.Address, p.City, p.State, p.Pincode, p.Locality, p.Landmark, p.Bedrooms, p.Bathrooms, p.BuiltUpArea, p.AreaUnit, p.Price, p.PriceType, p.SecurityDeposit, p.MaintenanceCharge, p.FurnishingStatus, p.AvailableFrom, p.PreferredTenant, p.Contact.Name, p.Contact.Phone, p.Contact.Email, p.Contact.WhatsApp, p.IsActive, p.IsFeatured)
	if err != nil {
		return domain.ErrOperationFailed
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *propertyRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	cmd, err := execSQL(ctx, r.pool, tx, `DELETE FROM properties WHERE id=$1;`, id)
	if err != nil {
		return domain.ErrOperationFailed
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *propertyRepo) SetStatus(ctx context.Context, tx repository.Tx, id int64, status model.PropertyStatus, reason string) error {
	const q = `UPDATE properties SET status=$2, rejection_reason=$3, updated_at=NOW() WHERE id=$1;`
	cmd, err := execSQL(ctx, r.pool, tx, q, id, status, reason)
	if err != nil {
		return domain.ErrOperationFailed
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *propertyRepo) IncrementViews(ctx context.Context, tx repository.Tx, id int64) error {
	_, err := execSQL(ctx, r.pool, tx, `UPDATE properties SET views=views+1 WHERE id=$1;`, id)
	if err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *propertyRepo) FindContactDetails(ctx context.Context, tx repository.Tx, id int64) (*model.ContactDetails, error) {
	const q = `SELECT contact_name, contact_phone, contact_email, contact_whatsapp FROM properties WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	c := &model.ContactDetails{}
	if err := row.Scan(&c.Name, &c.Phone, &c.Email, &c.WhatsApp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return c, nil
}

func (r *propertyRepo) AddImage(ctx context.Context, tx repository.Tx, propertyID int64, img *model.PropertyImage) error {
	const q = `
INSERT INTO property_images (property_id, url, public_id, caption, format, width, height, bytes, is_primary, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
RETURNING id, created_at;`
	row, err := pickRow(ctx, r.pool, tx, q, propertyID, img.URL, img.PublicID, img.Caption, img.Format, img.Width, img.Height, img.Bytes, img.IsPrimary)
	if err != nil {
		return err
	}
	if err := row.Scan(&img.ID, &img.CreatedAt); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *propertyRepo) DeleteImage(ctx context.Context, tx repository.Tx, propertyID, imageID int64) (*model.PropertyImage, error) {
	const q = `
DELETE FROM property_images
WHERE id=$1 AND property_id=$2
RETURNING id, url, public_id, caption, format, width, height, bytes, is_primary, created_at;`
	row, err := pickRow(ctx, r.pool, tx, q, imageID, propertyID)
	if err != nil {
		return nil, err
	}
	img := &model.PropertyImage{}
	if err := row.Scan(&img.ID, &img.URL, &img.PublicID, &img.Caption, &img.Format, &img.Width, &img.Height, &img.Bytes, &img.IsPrimary, &img.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return img, nil
}
