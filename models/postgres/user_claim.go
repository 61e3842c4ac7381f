package postgres

// Claim type under which roles are stored.
const ClaimTypeRole = "role"

// Role names known to the club.
const (
	RoleAdmin       = "Admin"
	RoleBoardMember = "BoardMember"
	RoleCoach       = "Coach"
	RolePlayer      = "Player"
)

// AllRoles lists the principal roles in seeding order.
var AllRoles = []string{RoleAdmin, RoleBoardMember, RoleCoach, RolePlayer}

/*
 * 'UserClaim' is a (type, value) pair attached to a user.
 */
type UserClaim struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     string `gorm:"size:36;not null;index:idx_user_claims_user_type"`
	ClaimType  string `gorm:"size:64;not null;index:idx_user_claims_user_type"`
	ClaimValue string `gorm:"size:256;not null"`
}
