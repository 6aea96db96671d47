package services

import (
	"encoding/json"

	"handwork_backend/internal/models"
	"handwork_backend/internal/services/dto"

	"gorm.io/datatypes"
)

// stringsToJSON упаковывает срез строк в jsonb-колонку.
func stringsToJSON(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}

// jsonToStrings распаковывает jsonb-колонку обратно в срез строк.
func jsonToStrings(data datatypes.JSON) []string {
	if len(data) == 0 {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return []string{}
	}
	return values
}

func buildPartyInfo(user *models.User) *dto.PartyInfo {
	if user == nil || user.ID == "" {
		return nil
	}
	info := &dto.PartyInfo{
		ID:    user.ID,
		Email: user.Email,
	}
	if user.Profile != nil {
		info.FullName = user.Profile.FullName
	}
	return info
}
