package models

// User is the minimal identity view the engine needs: a display name for
// notifications and the FCM token to deliver them to. Account management is
// an external concern.
type User struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	FCMToken string `bson:"fcmToken,omitempty" json:"-"`
}
