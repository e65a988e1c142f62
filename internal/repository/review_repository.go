package repository

import (
	"context"
	"database/sql"
	"time"
)

// ReviewRepo provides access to package reviews.  Uniqueness per
// (user, package) pair is enforced by an explicit ExistsForUserAndPackage
// pre-check in the handler, not by a storage constraint; concurrent
// submissions can therefore race (known, kept as designed).
type ReviewRepo struct {
	db *sql.DB
}

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// ExistsForUserAndPackage reports whether the user already reviewed the
// package.
func (r *ReviewRepo) ExistsForUserAndPackage(ctx context.Context, userID, packageID uint64) (bool, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM reviews WHERE user_id=? AND package_id=? LIMIT 1",
		userID, packageID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a review and returns its ID.
func (r *ReviewRepo) Create(ctx context.Context, userID, packageID uint64, rating int, comment string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reviews (user_id, package_id, rating, comment) VALUES (?, ?, ?, ?)",
		userID, packageID, rating, comment)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// CreateOnce inserts a review unless the user already reviewed the package,
// in which case it returns ErrDuplicateReview. The check and the insert are
// separate statements (see the type comment).
func (r *ReviewRepo) CreateOnce(ctx context.Context, userID, packageID uint64, rating int, comment string) (uint64, error) {
	exists, err := r.ExistsForUserAndPackage(ctx, userID, packageID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrDuplicateReview
	}
	return r.Create(ctx, userID, packageID, rating, comment)
}

// ReviewView is a review joined with the reviewer's name and, where the
// listing spans packages, the package name.
type ReviewView struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	PackageID   uint64    `json:"package_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
	UserName    string    `json:"user_name"`
	PackageName string    `json:"package_name,omitempty"`
}

// ListByPackage returns the reviews of one package, newest first.
func (r *ReviewRepo) ListByPackage(ctx context.Context, packageID uint64) ([]ReviewView, error) {
	const q = `SELECT r.id, r.user_id, r.package_id, r.rating, r.comment, r.created_at,
					  u.name AS user_name
			   FROM reviews r
			   JOIN users u ON u.id = r.user_id
			   WHERE r.package_id = ?
			   ORDER BY r.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, packageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ReviewView, 0)
	for rows.Next() {
		var (
			v       ReviewView
			comment sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.UserID, &v.PackageID, &v.Rating, &comment,
			&v.CreatedAt, &v.UserName); err != nil {
			return nil, err
		}
		v.Comment = comment.String
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListRecent returns the newest reviews across all packages with reviewer
// and package names, capped at limit.  The home document shows three.
func (r *ReviewRepo) ListRecent(ctx context.Context, limit int) ([]ReviewView, error) {
	return r.listWithNames(ctx, limit)
}

// ListAll returns every review with reviewer and package names, newest
// first.
func (r *ReviewRepo) ListAll(ctx context.Context) ([]ReviewView, error) {
	return r.listWithNames(ctx, 0)
}

func (r *ReviewRepo) listWithNames(ctx context.Context, limit int) ([]ReviewView, error) {
	q := `SELECT r.id, r.user_id, r.package_id, r.rating, r.comment, r.created_at,
				 u.name AS user_name, tp.name AS package_name
		  FROM reviews r
		  JOIN users u ON u.id = r.user_id
		  JOIN tour_packages tp ON tp.id = r.package_id
		  ORDER BY r.created_at DESC`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.db.QueryContext(ctx, q+" LIMIT ?", limit)
	} else {
		rows, err = r.db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ReviewView, 0)
	for rows.Next() {
		var (
			v       ReviewView
			comment sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.UserID, &v.PackageID, &v.Rating, &comment,
			&v.CreatedAt, &v.UserName, &v.PackageName); err != nil {
			return nil, err
		}
		v.Comment = comment.String
		out = append(out, v)
	}
	return out, rows.Err()
}
