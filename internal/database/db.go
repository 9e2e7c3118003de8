package database

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gorestaurant/internal/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"              // SQLite driver
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no plate has the requested id
var ErrNotFound = errors.New("food plate not found")

// Food is the stored form of a plate
type Food struct {
	ID          uint `gorm:"primary_key"`
	Name        string
	Image       string
	Price       string
	Description string `gorm:"type:text"`
	Available   bool
}

// TableName keeps the table aligned with the /foods resource
func (Food) TableName() string {
	return "foods"
}

func (f Food) plate() models.FoodPlate {
	return models.FoodPlate{
		ID:          f.ID,
		Name:        f.Name,
		Image:       f.Image,
		Price:       f.Price,
		Description: f.Description,
		Available:   f.Available,
	}
}

func fromPlate(p models.FoodPlate) Food {
	return Food{
		ID:          p.ID,
		Name:        p.Name,
		Image:       p.Image,
		Price:       p.Price,
		Description: p.Description,
		Available:   p.Available,
	}
}

// DB stores food plates through gorm
type DB struct {
	conn *gorm.DB
}

// Open connects to the database and migrates the foods table. dialect is
// "sqlite3" or "postgres".
func Open(dialect, dsn string, logger zerolog.Logger) (*DB, error) {
	conn, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}

	if dialect == "sqlite3" {
		// Every sqlite connection to :memory: is a separate database
		conn.DB().SetMaxOpenConns(1)
	}

	conn.SetLogger(gormLogger{log: logger.With().Str("component", "gorm").Logger()})
	conn.LogMode(logger.GetLevel() <= zerolog.DebugLevel)

	if err := conn.AutoMigrate(&Food{}).Error; err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate foods table: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// ListFoods returns every plate ordered by id
func (d *DB) ListFoods(ctx context.Context) ([]models.FoodPlate, error) {
	var rows []Food
	if err := d.conn.Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	foods := make([]models.FoodPlate, 0, len(rows))
	for _, row := range rows {
		foods = append(foods, row.plate())
	}
	return foods, nil
}

// GetFood returns a single plate
func (d *DB) GetFood(ctx context.Context, id uint) (models.FoodPlate, error) {
	var row Food
	if err := d.conn.Where("id = ?", id).First(&row).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return models.FoodPlate{}, ErrNotFound
		}
		return models.FoodPlate{}, err
	}
	return row.plate(), nil
}

// CreateFood stores a new plate; any id on the input is ignored
func (d *DB) CreateFood(ctx context.Context, plate models.FoodPlate) (models.FoodPlate, error) {
	row := fromPlate(plate)
	row.ID = 0
	if err := d.conn.Create(&row).Error; err != nil {
		return models.FoodPlate{}, err
	}
	return row.plate(), nil
}

// UpdateFood replaces every field of an existing plate
func (d *DB) UpdateFood(ctx context.Context, id uint, plate models.FoodPlate) (models.FoodPlate, error) {
	if _, err := d.GetFood(ctx, id); err != nil {
		return models.FoodPlate{}, err
	}

	row := fromPlate(plate)
	row.ID = id
	if err := d.conn.Save(&row).Error; err != nil {
		return models.FoodPlate{}, err
	}
	return row.plate(), nil
}

// DeleteFood removes a plate
func (d *DB) DeleteFood(ctx context.Context, id uint) error {
	result := d.conn.Where("id = ?", id).Delete(&Food{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Seed inserts plates when the table is empty and reports how many were added
func (d *DB) Seed(ctx context.Context, plates []models.FoodPlate) (int, error) {
	var count int64
	if err := d.conn.Model(&Food{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	tx := d.conn.Begin()
	for _, plate := range plates {
		row := fromPlate(plate)
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("seed %q: %w", plate.Name, err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return 0, err
	}
	return len(plates), nil
}

// seedFile is the layout of the seed document
type seedFile struct {
	Foods []models.FoodPlate `yaml:"foods"`
}

// LoadSeed reads the plates listed in a YAML seed file
func LoadSeed(path string) ([]models.FoodPlate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return seed.Foods, nil
}

// gormLogger sends gorm's log lines to zerolog
type gormLogger struct {
	log zerolog.Logger
}

func (l gormLogger) Print(v ...interface{}) {
	if len(v) >= 4 && v[0] == "sql" {
		l.log.Debug().
			Interface("source", v[1]).
			Interface("duration", v[2]).
			Interface("query", v[3]).
			Msg("sql")
		return
	}
	l.log.Debug().Msg(fmt.Sprint(v...))
}
