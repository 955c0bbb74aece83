package sqlite

import "github.com/hongminglow/homeflow-be/internal/models"

func userFixture() models.User {
	return models.User{ExternalID: "auth0|fixture", Email: "fixture@example.com", DisplayName: "Fixture"}
}

func todoFixture(userID int64) models.Todo {
	return models.Todo{UserID: userID, Title: "Water plants", Priority: models.PriorityLow}
}
