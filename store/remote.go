package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"self-order-api/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Remote talks to the hosted relational backend through GORM. The schema is
// owned by the backend; Remote never migrates it in production.
type Remote struct {
	db *gorm.DB
}

// OpenRemote connects to the hosted Postgres backend. The access key is the
// database password and is injected into the DSN separately so it never
// appears in config files.
func OpenRemote(url, key string) (*Remote, error) {
	dsn := url
	if key != "" {
		dsn = fmt.Sprintf("%s password=%s", url, key)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("remote store: open: %w", err)
	}
	return &Remote{db: db}, nil
}

// NewRemote wraps an existing GORM connection. Used by tests to substitute
// an in-memory SQLite database for the hosted backend.
func NewRemote(db *gorm.DB) *Remote {
	return &Remote{db: db}
}

// AutoMigrate creates the backend tables. Only meaningful when this process
// owns the schema (local SQLite mode and tests).
func (r *Remote) AutoMigrate() error {
	return r.db.AutoMigrate(&dishRow{}, &orderRow{}, &reservationRow{}, &userRow{})
}

func (r *Remote) Name() string { return "remote" }

// Ping performs the trivial read the selector probes with.
func (r *Remote) Ping(ctx context.Context) error {
	var rows []dishRow
	if err := r.db.WithContext(ctx).Limit(1).Find(&rows).Error; err != nil {
		return fmt.Errorf("remote store: probe: %w", err)
	}
	return nil
}

func (r *Remote) Dishes() DishStore              { return remoteDishes{r.db} }
func (r *Remote) Orders() OrderStore             { return remoteOrders{r.db} }
func (r *Remote) Reservations() ReservationStore { return remoteReservations{r.db} }
func (r *Remote) Users() UserStore               { return remoteUsers{r.db} }

// ── Dishes ───────────────────────────────────────────────────────────────────

type remoteDishes struct{ db *gorm.DB }

func (s remoteDishes) GetAll(ctx context.Context) ([]models.Dish, error) {
	var rows []dishRow
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("dishes: query: %w", err)
	}
	dishes := make([]models.Dish, 0, len(rows))
	for _, row := range rows {
		dishes = append(dishes, dishFromRow(row))
	}
	return dishes, nil
}

func (s remoteDishes) Create(ctx context.Context, dish models.Dish) (models.Dish, error) {
	row := dishToRow(dish)
	row.ID = 0 // backend assigns the id
	res := s.db.WithContext(ctx).Create(&row)
	if res.Error != nil {
		return models.Dish{}, fmt.Errorf("dish create rejected: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Dish{}, fmt.Errorf("dish create: %w", ErrNoRowReturned)
	}
	return dishFromRow(row), nil
}

func (s remoteDishes) Update(ctx context.Context, id int, updates models.DishUpdate) (models.Dish, error) {
	fields := map[string]any{"updated_at": time.Now()}
	if updates.Name != nil {
		fields["name"] = *updates.Name
	}
	if updates.Description != nil {
		fields["description"] = *updates.Description
	}
	if updates.Price != nil {
		fields["price"] = *updates.Price
	}
	if updates.Category != nil {
		fields["category"] = string(*updates.Category)
	}
	if updates.Image != nil {
		fields["image_url"] = *updates.Image
	}
	if updates.IsSoldOut != nil {
		fields["is_sold_out"] = *updates.IsSoldOut
	}
	if updates.Spiciness != nil {
		fields["spiciness"] = *updates.Spiciness
	}

	res := s.db.WithContext(ctx).Model(&dishRow{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return models.Dish{}, fmt.Errorf("dish update: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Dish{}, notFound("dish", id)
	}

	var row dishRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return models.Dish{}, fmt.Errorf("dish update: reload: %w", err)
	}
	return dishFromRow(row), nil
}

func (s remoteDishes) Delete(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).Delete(&dishRow{}, id)
	if res.Error != nil {
		return fmt.Errorf("dish delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("dish", id)
	}
	return nil
}

// IncrementSales applies the increment server-side in one statement, so two
// concurrent orders never lose an update on the sales counter.
func (s remoteDishes) IncrementSales(ctx context.Context, id, by int) error {
	res := s.db.WithContext(ctx).Exec(
		"UPDATE dishes SET sales = sales + ?, updated_at = ? WHERE id = ?",
		by, time.Now(), id,
	)
	if res.Error != nil {
		return fmt.Errorf("dish sales increment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("dish", id)
	}
	return nil
}

// ── Orders ───────────────────────────────────────────────────────────────────

type remoteOrders struct{ db *gorm.DB }

func (s remoteOrders) GetAll(ctx context.Context) ([]models.Order, error) {
	var rows []orderRow
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("orders: query: %w", err)
	}
	return ordersFromRows(rows)
}

func (s remoteOrders) GetByUser(ctx context.Context, userID int) ([]models.Order, error) {
	var rows []orderRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", strconv.Itoa(userID)).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("orders: query by user: %w", err)
	}
	return ordersFromRows(rows)
}

func (s remoteOrders) Get(ctx context.Context, id string) (models.Order, error) {
	var row orderRow
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, notFound("order", id)
		}
		return models.Order{}, fmt.Errorf("orders: query: %w", err)
	}
	return orderFromRow(row)
}

func (s remoteOrders) Create(ctx context.Context, order models.Order) (models.Order, error) {
	row, err := orderToRow(order)
	if err != nil {
		return models.Order{}, fmt.Errorf("order create: encode items: %w", err)
	}
	row.ID = uuid.NewString()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}

	res := s.db.WithContext(ctx).Create(&row)
	if res.Error != nil {
		return models.Order{}, fmt.Errorf("order create rejected: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Order{}, fmt.Errorf("order create: %w", ErrNoRowReturned)
	}
	return orderFromRow(row)
}

func (s remoteOrders) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	res := s.db.WithContext(ctx).Model(&orderRow{}).Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if res.Error != nil {
		return models.Order{}, fmt.Errorf("order status update: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Order{}, notFound("order", id)
	}

	var row orderRow
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return models.Order{}, fmt.Errorf("order status update: reload: %w", err)
	}
	return orderFromRow(row)
}

func ordersFromRows(rows []orderRow) ([]models.Order, error) {
	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		order, err := orderFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("orders: decode items of %s: %w", row.ID, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// ── Reservations ─────────────────────────────────────────────────────────────

type remoteReservations struct{ db *gorm.DB }

func (s remoteReservations) GetAll(ctx context.Context) ([]models.Reservation, error) {
	var rows []reservationRow
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("reservations: query: %w", err)
	}
	reservations := make([]models.Reservation, 0, len(rows))
	for _, row := range rows {
		reservations = append(reservations, reservationFromRow(row))
	}
	return reservations, nil
}

func (s remoteReservations) Create(ctx context.Context, res models.Reservation) (models.Reservation, error) {
	row := reservationRow{
		ID:        uuid.NewString(),
		Name:      res.Name,
		Date:      res.Date,
		Time:      res.Time,
		Guests:    res.Guests,
		Status:    string(res.Status),
		CreatedAt: time.Now(),
	}
	out := s.db.WithContext(ctx).Create(&row)
	if out.Error != nil {
		return models.Reservation{}, fmt.Errorf("reservation create rejected: %w", out.Error)
	}
	if out.RowsAffected == 0 {
		return models.Reservation{}, fmt.Errorf("reservation create: %w", ErrNoRowReturned)
	}
	return reservationFromRow(row), nil
}

func (s remoteReservations) UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) (models.Reservation, error) {
	res := s.db.WithContext(ctx).Model(&reservationRow{}).Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return models.Reservation{}, fmt.Errorf("reservation status update: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Reservation{}, notFound("reservation", id)
	}

	var row reservationRow
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return models.Reservation{}, fmt.Errorf("reservation status update: reload: %w", err)
	}
	return reservationFromRow(row), nil
}

// ── Users ────────────────────────────────────────────────────────────────────

type remoteUsers struct{ db *gorm.DB }

func (s remoteUsers) GetOrCreate(ctx context.Context, user models.User) (models.User, error) {
	var row userRow
	err := s.db.WithContext(ctx).Where("nickname = ?", user.Nickname).First(&row).Error
	if err == nil {
		return userFromRow(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("user lookup: %w", err)
	}

	// The backend keeps string ids; a millisecond timestamp keeps them
	// numeric so the internal integer id survives the round trip.
	row = userRow{
		ID:        strconv.FormatInt(time.Now().UnixMilli(), 10),
		Nickname:  user.Nickname,
		AvatarURL: user.Avatar,
		Role:      string(user.Role),
		Points:    user.Points,
		CreatedAt: time.Now(),
	}
	res := s.db.WithContext(ctx).Create(&row)
	if res.Error != nil {
		return models.User{}, fmt.Errorf("user create rejected: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.User{}, fmt.Errorf("user create: %w", ErrNoRowReturned)
	}
	return userFromRow(row), nil
}

func (s remoteUsers) UpdateStats(ctx context.Context, userID int, spend float64) error {
	res := s.db.WithContext(ctx).Exec(
		"UPDATE users SET total_spend = total_spend + ?, order_count = order_count + 1, points = points + ? WHERE id = ?",
		spend, int(spend), strconv.Itoa(userID),
	)
	if res.Error != nil {
		return fmt.Errorf("user stats update: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("user", userID)
	}
	return nil
}
