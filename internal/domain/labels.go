package domain

// Display names and colors for the fixed project type keys, used by the
// seeded configs and as fallbacks when a config is missing.

var ProjectTypeNames = map[string]string{
	TypeCabinetBuild:   "Cabinet Build",
	TypeRepair:         "Repair",
	TypePaint:          "Paint Shop",
	TypeCustom:         "Custom Work",
	TypeMobileWorkshop: "Mobile Workshop",
	TypeMedical:        "Medical Vehicle",
	TypeBroadcast:      "Broadcast Vehicle",
	TypeDefense:        "Defense & Police",
}

var ProjectTypeColors = map[string]string{
	TypeCabinetBuild:   "#3B82F6",
	TypeRepair:         "#EF4444",
	TypePaint:          "#F59E0B",
	TypeCustom:         "#10B981",
	TypeMobileWorkshop: "#8B5CF6",
	TypeMedical:        "#EC4899",
	TypeBroadcast:      "#6366F1",
	TypeDefense:        "#065F46",
}

const fallbackColor = "#6b7280"

// ProjectTypeName returns the display name for a type key, or the key
// itself when unknown.
func ProjectTypeName(key string) string {
	if n, ok := ProjectTypeNames[key]; ok {
		return n
	}
	return key
}

// ProjectTypeColor returns the display color for a type key.
func ProjectTypeColor(key string) string {
	if c, ok := ProjectTypeColors[key]; ok {
		return c
	}
	return fallbackColor
}

var ResourceTypeNames = map[string]string{
	ResourcePaintBooth: "Paint Booth",
	ResourceWorkshop:   "Workshop",
	ResourceRepairBay:  "Repair Bay",
	ResourceWarehouse:  "Warehouse",
}

var TaskStatusNames = map[string]string{
	TaskStatusNew:        "New",
	TaskStatusScheduled:  "Scheduled",
	TaskStatusInProgress: "In Progress",
	TaskStatusDone:       "Done",
}

var EmployeeRoleNames = map[string]string{
	RolePlanner:   "Planner",
	RoleMechanic:  "Mechanic",
	RoleWarehouse: "Warehouse",
	RoleAdmin:     "Administration",
}
