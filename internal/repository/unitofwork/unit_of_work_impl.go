package unitofwork

import (
	"context"
	"fmt"

	"meal-planner-be/internal/repository/contract"
	"meal-planner-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) SavePoint(name string) error {
	if u.tx == nil {
		return fmt.Errorf("no transaction for savepoint %q", name)
	}
	return u.tx.SavePoint(name).Error
}

func (u *UnitOfWorkImpl) RollbackTo(name string) error {
	if u.tx == nil {
		return fmt.Errorf("no transaction for savepoint %q", name)
	}
	return u.tx.RollbackTo(name).Error
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PreferenceRepository() contract.PreferenceRepository {
	return implementation.NewPreferenceRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MealPlanRepository() contract.MealPlanRepository {
	return implementation.NewMealPlanRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RecipeRepository() contract.RecipeRepository {
	return implementation.NewRecipeRepository(u.getDB())
}

func (u *UnitOfWorkImpl) IngredientRepository() contract.IngredientRepository {
	return implementation.NewIngredientRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ShoppingListRepository() contract.ShoppingListRepository {
	return implementation.NewShoppingListRepository(u.getDB())
}
