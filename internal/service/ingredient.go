package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-recipes/backend/internal/apperr"
	"github.com/pageza/alchemorsel-recipes/backend/internal/logger"
	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

// IngredientService handles ingredient operations
type IngredientService struct {
	db  *gorm.DB
	log *logger.Logger
}

var _ IIngredientService = (*IngredientService)(nil)

// NewIngredientService creates a new IngredientService instance
func NewIngredientService(db *gorm.DB, log *logger.Logger) *IngredientService {
	return &IngredientService{
		db:  db,
		log: log.With("service", "IngredientService"),
	}
}

// Create stores a new ingredient. Names are unique ignoring case and
// surrounding whitespace.
func (s *IngredientService) Create(ctx context.Context, req *types.CreateIngredientRequest) (*models.Ingredient, error) {
	if req == nil {
		return nil, apperr.InvalidInput("ingredient payload is required")
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	ingredient := newIngredient(req)
	if ingredient.Name == "" {
		return nil, apperr.InvalidInput("name is required")
	}

	exists, err := s.nameTaken(ctx, ingredient.Name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("ingredient %q already exists", ingredient.Name)
	}

	if err := s.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("ingredient %q already exists", ingredient.Name)
		}
		return nil, err
	}
	s.log.Info("ingredient created", "id", ingredient.ID, "name", ingredient.Name)
	return ingredient, nil
}

// List returns every ingredient ordered by name
func (s *IngredientService) List(ctx context.Context) ([]*models.Ingredient, error) {
	var ingredients []*models.Ingredient
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetByID retrieves an ingredient by ID
func (s *IngredientService) GetByID(ctx context.Context, id string) (*models.Ingredient, error) {
	parsed, ok := parseID(id)
	if !ok {
		return nil, apperr.NotFound("ingredient not found: %s", id)
	}
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", parsed.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ingredient not found: %s", id)
		}
		return nil, err
	}
	return &ingredient, nil
}

// FindByName retrieves an ingredient by name, ignoring case
func (s *IngredientService) FindByName(ctx context.Context, name string) (*models.Ingredient, error) {
	key := models.NameKey(name)
	if key == "" {
		return nil, apperr.NotFound("ingredient not found: %q", name)
	}
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "name_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ingredient not found: %q", name)
		}
		return nil, err
	}
	return &ingredient, nil
}

// Update applies the non-nil fields of req to an ingredient
func (s *IngredientService) Update(ctx context.Context, id string, req *types.UpdateIngredientRequest) (*models.Ingredient, error) {
	if req == nil {
		return nil, apperr.InvalidInput("ingredient payload is required")
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	ingredient, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.InvalidInput("name must not be empty")
		}
		if models.NameKey(name) != ingredient.NameKey {
			taken, err := s.nameTaken(ctx, name, ingredient.ID.String())
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperr.Conflict("ingredient %q already exists", name)
			}
		}
		ingredient.Name = name
	}
	if req.Tags != nil {
		ingredient.Tags = normalizeSet(*req.Tags)
	}
	if req.Category != nil {
		ingredient.Category = strings.TrimSpace(*req.Category)
	}
	if req.Unit != nil {
		ingredient.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.CaloriesPerUnit != nil {
		v := *req.CaloriesPerUnit
		ingredient.CaloriesPerUnit = &v
	}

	if err := s.db.WithContext(ctx).Save(ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("ingredient %q already exists", ingredient.Name)
		}
		return nil, err
	}
	s.log.Info("ingredient updated", "id", ingredient.ID)
	return ingredient, nil
}

// Remove deletes an ingredient. Recipes referencing it are left as they are.
func (s *IngredientService) Remove(ctx context.Context, id string) (*types.MessageResponse, error) {
	parsed, ok := parseID(id)
	if !ok {
		return nil, apperr.NotFound("ingredient not found: %s", id)
	}
	result := s.db.WithContext(ctx).Delete(&models.Ingredient{}, "id = ?", parsed.String())
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("ingredient not found: %s", id)
	}
	s.log.Info("ingredient deleted", "id", parsed)
	return &types.MessageResponse{Message: "ingredient deleted"}, nil
}

// BulkCreate inserts a batch of ingredients. Duplicates inside the batch
// keep their first occurrence and names already stored are skipped. A failed
// insert is logged and does not stop the rest of the batch.
func (s *IngredientService) BulkCreate(ctx context.Context, reqs []types.CreateIngredientRequest) ([]*models.Ingredient, error) {
	if len(reqs) == 0 {
		return nil, apperr.InvalidInput("at least one ingredient is required")
	}

	candidates := make([]*models.Ingredient, 0, len(reqs))
	seen := make(map[string]struct{}, len(reqs))
	for i := range reqs {
		if err := validateStruct(&reqs[i]); err != nil {
			return nil, apperr.InvalidInput("ingredient %d: %v", i, err)
		}
		ingredient := newIngredient(&reqs[i])
		key := models.NameKey(ingredient.Name)
		if key == "" {
			return nil, apperr.InvalidInput("ingredient %d: name is required", i)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		candidates = append(candidates, ingredient)
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	var existing []string
	if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("name_key IN ?", keys).
		Pluck("name_key", &existing).Error; err != nil {
		return nil, err
	}
	stored := make(map[string]struct{}, len(existing))
	for _, k := range existing {
		stored[k] = struct{}{}
	}

	fresh := candidates[:0]
	for _, c := range candidates {
		if _, ok := stored[models.NameKey(c.Name)]; !ok {
			fresh = append(fresh, c)
		}
	}
	if len(fresh) == 0 {
		return nil, apperr.Conflict("all ingredients already exist")
	}

	inserted := make([]*models.Ingredient, 0, len(fresh))
	for _, ingredient := range fresh {
		if err := s.db.WithContext(ctx).Create(ingredient).Error; err != nil {
			s.log.Warn("skipping ingredient in bulk insert", "name", ingredient.Name, "error", err)
			continue
		}
		inserted = append(inserted, ingredient)
	}
	s.log.Info("ingredients populated", "requested", len(reqs), "inserted", len(inserted))
	return inserted, nil
}

func (s *IngredientService) nameTaken(ctx context.Context, name string, exceptID string) (bool, error) {
	q := s.db.WithContext(ctx).Model(&models.Ingredient{}).Where("name_key = ?", models.NameKey(name))
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func newIngredient(req *types.CreateIngredientRequest) *models.Ingredient {
	ingredient := &models.Ingredient{
		Name:     strings.TrimSpace(req.Name),
		Tags:     normalizeSet(req.Tags),
		Category: strings.TrimSpace(req.Category),
		Unit:     strings.TrimSpace(req.Unit),
	}
	if req.CaloriesPerUnit != nil {
		v := *req.CaloriesPerUnit
		ingredient.CaloriesPerUnit = &v
	}
	return ingredient
}
