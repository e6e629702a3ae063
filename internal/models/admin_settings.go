package models

import "time"

// AdminSettings - синглтон с таблицей квот по ролям и переключателями paywall.
// Меняется только админами.
type AdminSettings struct {
	RoleQuotas RoleQuotaTable  `json:"role_quotas"`
	Paywall    PaywallSettings `json:"paywall"`
	UpdatedAt  time.Time       `json:"updated_at"`
	UpdatedBy  string          `json:"updated_by,omitempty"`
}

type RoleQuotaTable struct {
	Admin      InviteQuota `json:"admin"`
	Creator    InviteQuota `json:"creator"`
	CreatorPro InviteQuota `json:"creator_pro"`
	Producer   InviteQuota `json:"producer"`
}

type PaywallSettings struct {
	Enabled           bool `json:"enabled"`
	ProUpgradeEnabled bool `json:"pro_upgrade_enabled"`
}

// DefaultAdminSettings строит настройки из статической таблицы BaseQuota
func DefaultAdminSettings() *AdminSettings {
	return &AdminSettings{
		RoleQuotas: RoleQuotaTable{
			Admin:      BaseQuota(UserRoleAdmin),
			Creator:    BaseQuota(UserRoleCreator),
			CreatorPro: BaseQuota(UserRoleCreatorPro),
			Producer:   BaseQuota(UserRoleProducer),
		},
		Paywall: PaywallSettings{Enabled: false, ProUpgradeEnabled: true},
	}
}

// QuotaFor - действующая базовая квота роли с учетом настроек
func (s *AdminSettings) QuotaFor(role UserRole) InviteQuota {
	switch role {
	case UserRoleAdmin:
		return s.RoleQuotas.Admin
	case UserRoleCreator:
		return s.RoleQuotas.Creator
	case UserRoleCreatorPro:
		return s.RoleQuotas.CreatorPro
	default:
		return s.RoleQuotas.Producer
	}
}
