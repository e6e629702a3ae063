package models

type UserRole string
type InviteType string
type InviteStatus string
type SubscriptionTier string
type SubscriptionStatus string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleCreator    UserRole = "creator"
	UserRoleCreatorPro UserRole = "creator_pro"
	UserRoleProducer   UserRole = "producer"

	// Типы инвайтов соответствуют трем бакетам квоты
	InviteTypeCreator    InviteType = "creator"
	InviteTypeProduction InviteType = "production"
	InviteTypeProducer   InviteType = "producer"

	InviteStatusActive  InviteStatus = "active"
	InviteStatusUsed    InviteStatus = "used"
	InviteStatusExpired InviteStatus = "expired"

	SubscriptionTierFree   SubscriptionTier = "free"
	SubscriptionTierPro    SubscriptionTier = "pro"
	SubscriptionTierStudio SubscriptionTier = "studio"

	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// ValidRegistrationRole - роли, доступные при самостоятельной регистрации.
// Админов через /register не создают.
func ValidRegistrationRole(r UserRole) bool {
	switch r {
	case UserRoleCreator, UserRoleCreatorPro, UserRoleProducer:
		return true
	}
	return false
}

func ValidRole(r UserRole) bool {
	return r == UserRoleAdmin || ValidRegistrationRole(r)
}

func ValidInviteType(t InviteType) bool {
	switch t {
	case InviteTypeCreator, InviteTypeProduction, InviteTypeProducer:
		return true
	}
	return false
}

// RoleForInviteType - какую роль получает зарегистрировавшийся по инвайту
func RoleForInviteType(t InviteType) UserRole {
	switch t {
	case InviteTypeProduction:
		return UserRoleCreatorPro
	case InviteTypeProducer:
		return UserRoleProducer
	default:
		return UserRoleCreator
	}
}

// IsCreatorRole - роли, для которых заводится CreatorProfile
func IsCreatorRole(r UserRole) bool {
	return r == UserRoleCreator || r == UserRoleCreatorPro
}
