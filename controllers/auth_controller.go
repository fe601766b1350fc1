package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/siddhardha-create/lifeOS/config"
	"github.com/siddhardha-create/lifeOS/helpers"
	"github.com/siddhardha-create/lifeOS/models"
)

func roleFor(u *models.User) string {
	if u.IsAdmin {
		return "ADMIN"
	}
	return "USER"
}

func publicUser(u models.User) gin.H {
	return gin.H{
		"id":          u.UserID,
		"name":        u.Name,
		"email":       u.Email,
		"isAdmin":     u.IsAdmin,
		"goals":       u.Goals,
		"preferences": u.Preferences,
	}
}

// Register creates an account with default goals and preferences. The
// admin flag is never settable here.
func Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var user models.User
		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		if err := validate.Struct(user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		userCollection := config.OpenCollection("users")

		count, err := userCollection.CountDocuments(ctx, bson.M{"email": user.Email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already registered"})
			return
		}

		hashed, err := helpers.HashPassword(user.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		user.Password = hashed
		user.IsAdmin = false
		user.Goals = models.DefaultGoals()
		user.Preferences = models.DefaultPreferences()
		user.ID = primitive.NewObjectID()
		user.UserID = user.ID.Hex()
		user.CreatedAt = time.Now().UTC()
		user.UpdatedAt = user.CreatedAt

		if _, err := userCollection.InsertOne(ctx, user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		token, err := helpers.GenerateToken(user.Email, user.UserID, roleFor(&user))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "user": publicUser(user)})
	}
}

func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}
		if body.Email == "" || body.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide email and password"})
			return
		}

		var user models.User
		err := config.OpenCollection("users").FindOne(ctx, bson.M{"email": body.Email}).Decode(&user)
		if err != nil || !helpers.VerifyPassword(user.Password, body.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}

		token, err := helpers.GenerateToken(user.Email, user.UserID, roleFor(&user))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": publicUser(user)})
	}
}

func GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var user models.User
		err := config.OpenCollection("users").FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "user": publicUser(user)})
	}
}

// UpdateProfile changes name, goals, and preferences. Anything omitted is
// left alone.
func UpdateProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var body struct {
			Name        *string             `json:"name" validate:"omitempty,min=2,max=50"`
			Goals       *models.Goals       `json:"goals"`
			Preferences *models.Preferences `json:"preferences"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		if err := validate.Struct(body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		update := bson.M{"updated_at": time.Now().UTC()}
		if body.Name != nil {
			update["name"] = *body.Name
		}
		if body.Goals != nil {
			update["goals"] = *body.Goals
		}
		if body.Preferences != nil {
			update["preferences"] = *body.Preferences
		}

		userCollection := config.OpenCollection("users")
		if _, err := userCollection.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		var user models.User
		if err := userCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user": publicUser(user)})
	}
}

func ChangePassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var body struct {
			CurrentPassword string `json:"currentPassword" validate:"required"`
			NewPassword     string `json:"newPassword" validate:"required,min=6"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		if err := validate.Struct(body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		userCollection := config.OpenCollection("users")

		var user models.User
		if err := userCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		if !helpers.VerifyPassword(user.Password, body.CurrentPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Current password incorrect"})
			return
		}

		hashed, err := helpers.HashPassword(body.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		if _, err := userCollection.UpdateOne(ctx, bson.M{"user_id": userID},
			bson.M{"$set": bson.M{"password": hashed, "updated_at": time.Now().UTC()}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully"})
	}
}
