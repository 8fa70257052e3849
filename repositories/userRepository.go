package repositories

import (
	"DentalSimple/models"
	"DentalSimple/utils"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const activeSessionSlot = "current"

func (r *SQLStore) CreateUser(ctx context.Context, user *models.User) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return utils.Persistence("check email existence", err)
	}
	if count > 0 {
		return utils.ErrAlreadyRegistered
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrAlreadyRegistered
		}
		return utils.Persistence("create user", err)
	}
	return nil
}

func (r *SQLStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("user", email)
		}
		return nil, utils.Persistence("get user", err)
	}
	return &user, nil
}

func (r *SQLStore) LoadSession(ctx context.Context) (string, error) {
	var session models.ActiveSession
	err := r.db.WithContext(ctx).Where("slot = ?", activeSessionSlot).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", utils.Persistence("load session", err)
	}
	return session.Token, nil
}

func (r *SQLStore) SaveSession(ctx context.Context, token string) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"token"}),
	}).Create(&models.ActiveSession{Slot: activeSessionSlot, Token: token}).Error
	return utils.Persistence("save session", err)
}

func (r *SQLStore) ClearSession(ctx context.Context) error {
	err := r.db.WithContext(ctx).Where("slot = ?", activeSessionSlot).Delete(&models.ActiveSession{}).Error
	return utils.Persistence("clear session", err)
}
