package controllers

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/victorjere/BizTrack-SMEs/database"
	"github.com/victorjere/BizTrack-SMEs/models"
)

type RegisterInput struct {
	FullName     string `json:"full_name" binding:"required"`
	PhoneNumber  string `json:"phone_number"`
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	BusinessName string `json:"business_name" binding:"required"`
	Role         string `json:"role"`
	Tier         string `json:"tier"`
	NewBusiness  bool   `json:"new_business"`
}

type Credentials struct {
	BusinessName string `json:"business_name" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Role         string `json:"role" binding:"required"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// issueSession signs a JWT carrying the credential-stripped account
// projection and sets it as the session cookie.
func issueSession(c *gin.Context, user models.User) error {
	expirationTime := time.Now().Add(24 * time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":       user.ID,
		"email":         user.Email,
		"role":          user.Role,
		"business_name": user.BusinessName,
		"status":        user.Status,
		"exp":           expirationTime.Unix(),
	})
	secret := []byte(os.Getenv("JWT_SECRET"))
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return err
	}

	cookie := fmt.Sprintf(
		"token=%s; Path=/; Max-Age=%d; Secure; HttpOnly; SameSite=None",
		tokenString,
		86400,
	)
	c.Header("Set-Cookie", cookie)
	return nil
}

// findBusinessOwner looks up the OWNER account for a business name,
// case-insensitively. The owner record is the existence proof for the
// business itself.
func findBusinessOwner(businessName string) (models.User, bool) {
	var owner models.User
	err := database.DB.Where(
		"LOWER(business_name) = ? AND role = ?",
		strings.ToLower(strings.TrimSpace(businessName)),
		models.RoleOwner,
	).First(&owner).Error
	return owner, err == nil
}

func CreateUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := normalizeEmail(input.Email)
	businessName := strings.TrimSpace(input.BusinessName)

	// Check if user already exists. Uniqueness is permanent: a rejected
	// account still occupies its email.
	var existingUser models.User
	if err := database.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Email already registered. Please Log In.",
			"code":  "DUPLICATE_EMAIL",
		})
		return
	}

	owner, ownerExists := findBusinessOwner(businessName)

	user := models.User{
		ID:           uuid.NewString(),
		FullName:     input.FullName,
		PhoneNumber:  input.PhoneNumber,
		Email:        email,
		BusinessName: businessName,
		Tier:         input.Tier,
	}
	if user.Tier != models.TierPaid {
		user.Tier = models.TierFree
	}

	if input.NewBusiness {
		if ownerExists {
			c.JSON(http.StatusConflict, gin.H{
				"error": "This business name is already registered. Please 'Join Existing' instead.",
				"code":  "BUSINESS_NAME_TAKEN",
			})
			return
		}
		// First person to register this business name becomes the OWNER,
		// whatever role was asked for.
		user.Role = models.RoleOwner
		user.Status = models.StatusApproved
	} else {
		if !ownerExists {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Business not found. Please register it as a new business first.",
				"code":  "BUSINESS_NOT_FOUND",
			})
			return
		}
		if input.Role != models.RoleManager && input.Role != models.RoleSalesPerson {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Staff must join as MANAGER or SALES_PERSON",
				"code":  "INVALID_ROLE",
			})
			return
		}
		// Adopt the owner's spelling of the business name so every record
		// in the partition carries the same string.
		user.BusinessName = owner.BusinessName
		user.Role = input.Role
		user.Status = models.StatusPending
	}

	// Hash the password
	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	user.Password = hashedPassword

	// Save user to database
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := issueSession(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// login function
func Login(c *gin.Context) {
	var creds Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", normalizeEmail(creds.Email)).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Account not found. Please register first.",
			"code":  "ACCOUNT_NOT_FOUND",
		})
		return
	}

	if strings.ToLower(user.BusinessName) != strings.ToLower(strings.TrimSpace(creds.BusinessName)) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": fmt.Sprintf("This email does not belong to %q. Please check your Business Name.", creds.BusinessName),
			"code":  "BUSINESS_MISMATCH",
		})
		return
	}

	if !CheckPasswordHash(creds.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Incorrect password.",
			"code":  "INVALID_CREDENTIAL",
		})
		return
	}

	if user.Role != creds.Role {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": fmt.Sprintf("Invalid role selected. This account is registered as %s.", strings.ReplaceAll(user.Role, "_", " ")),
			"code":  "ROLE_MISMATCH",
		})
		return
	}

	if err := issueSession(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
	})
}

// GetStaff - lists every account in the caller's business except the caller
func GetStaff(c *gin.Context) {
	userID := c.GetString("user_id")
	businessName := c.GetString("business_name")

	var staff []models.User
	if err := database.DB.
		Where("LOWER(business_name) = ? AND id <> ?", strings.ToLower(businessName), userID).
		Order("created_at").
		Find(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch users"})
		return
	}

	c.JSON(http.StatusOK, staff)
}

// UpdateUserStatus drives the approval workflow. Owner-only by route.
// Transitions outside the state machine are rejected, and an OWNER account
// is never a valid target.
func UpdateUserStatus(c *gin.Context) {
	businessName := c.GetString("business_name")

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var target models.User
	if err := database.DB.Where("id = ?", c.Param("id")).First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "code": "USER_NOT_FOUND"})
		return
	}

	if strings.ToLower(target.BusinessName) != strings.ToLower(businessName) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "User belongs to a different business",
			"code":  "BUSINESS_MISMATCH",
		})
		return
	}

	if target.Role == models.RoleOwner {
		c.JSON(http.StatusConflict, gin.H{
			"error": "The business owner's status cannot be changed",
			"code":  "INVALID_STATUS_CHANGE",
		})
		return
	}

	if !models.ValidStatusChange(target.Status, input.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("Cannot change status from %s to %s", target.Status, input.Status),
			"code":  "INVALID_STATUS_CHANGE",
		})
		return
	}

	target.Status = input.Status
	if err := database.DB.Save(&target).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update status"})
		return
	}

	c.JSON(http.StatusOK, target)
}

func Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
