package kvstore

import (
	"encoding/json"

	"github.com/hostbit/hostbit/pkg/database"
	"github.com/hostbit/hostbit/pkg/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps the key-value namespace in the kv_entries table and set
// membership in kv set member rows guarded by a composite unique index.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(key string, out interface{}) (bool, error) {
	var entry models.KVEntry
	db := s.db.Where(&models.KVEntry{Key: key}).Find(&entry)
	if _, ok := database.CheckDBForErrorOrNoRows(db); !ok {
		return false, db.Error
	}

	err := json.Unmarshal(entry.Value, out)
	if err != nil {
		logrus.Error(err)
		return false, err
	}

	return true, nil
}

func (s *GormStore) Set(key string, value interface{}) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		logrus.Error(err)
		return err
	}

	entry := models.KVEntry{Key: key, Value: bytes}
	db := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)
	if db.Error != nil {
		logrus.Error(db.Error)
	}

	return db.Error
}

func (s *GormStore) Delete(key string) error {
	db := s.db.Where(&models.KVEntry{Key: key}).Delete(&models.KVEntry{})
	if db.Error != nil {
		logrus.Error(db.Error)
	}

	return db.Error
}

func (s *GormStore) SetAdd(set string, member string) error {
	row := models.SetMember{SetKey: set, Member: member}
	db := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if db.Error != nil {
		logrus.Error(db.Error)
	}

	return db.Error
}

func (s *GormStore) SetRemove(set string, member string) error {
	db := s.db.Where(&models.SetMember{SetKey: set, Member: member}).Delete(&models.SetMember{})
	if db.Error != nil {
		logrus.Error(db.Error)
	}

	return db.Error
}

func (s *GormStore) SetContains(set string, member string) (bool, error) {
	var row models.SetMember
	db := s.db.Where(&models.SetMember{SetKey: set, Member: member}).Find(&row)
	if db.Error != nil {
		logrus.Error(db.Error)
		return false, db.Error
	}

	return db.RowsAffected > 0, nil
}

func (s *GormStore) SetMembers(set string) ([]string, error) {
	var rows []models.SetMember
	db := s.db.Where(&models.SetMember{SetKey: set}).Find(&rows)
	if db.Error != nil {
		logrus.Error(db.Error)
		return nil, db.Error
	}

	members := make([]string, 0, len(rows))
	for _, row := range rows {
		members = append(members, row.Member)
	}

	return members, nil
}
