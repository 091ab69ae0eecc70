package domain

// Resource is an entity class subject to permission checks.
type Resource string

const (
	ResourceMenuItem      Resource = "menu_item"
	ResourceOrder         Resource = "order"
	ResourceInventory     Resource = "inventory"
	ResourceFinancialData Resource = "financial_data"
	ResourceUser          Resource = "user"
)

// Action is an operation on a Resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resources and Actions list every known value, in table order.
var (
	Resources = []Resource{ResourceMenuItem, ResourceOrder, ResourceInventory, ResourceFinancialData, ResourceUser}
	Actions   = []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}
)

type grant struct {
	role     Role
	resource Resource
	action   Action
}

// permissions is the fully enumerated grant table. Anything absent is denied;
// there is no wildcard or role inheritance.
var permissions = map[grant]bool{
	{RoleAdmin, ResourceMenuItem, ActionCreate}:      true,
	{RoleAdmin, ResourceMenuItem, ActionRead}:        true,
	{RoleAdmin, ResourceMenuItem, ActionUpdate}:      true,
	{RoleAdmin, ResourceMenuItem, ActionDelete}:      true,
	{RoleAdmin, ResourceOrder, ActionCreate}:         true,
	{RoleAdmin, ResourceOrder, ActionRead}:           true,
	{RoleAdmin, ResourceOrder, ActionUpdate}:         true,
	{RoleAdmin, ResourceOrder, ActionDelete}:         true,
	{RoleAdmin, ResourceInventory, ActionCreate}:     true,
	{RoleAdmin, ResourceInventory, ActionRead}:       true,
	{RoleAdmin, ResourceInventory, ActionUpdate}:     true,
	{RoleAdmin, ResourceInventory, ActionDelete}:     true,
	{RoleAdmin, ResourceFinancialData, ActionRead}:   true,
	{RoleAdmin, ResourceUser, ActionCreate}:          true,
	{RoleAdmin, ResourceUser, ActionRead}:            true,
	{RoleAdmin, ResourceUser, ActionUpdate}:          true,
	{RoleAdmin, ResourceUser, ActionDelete}:          true,
	{RoleChef, ResourceMenuItem, ActionRead}:         true,
	{RoleChef, ResourceOrder, ActionRead}:            true,
	{RoleChef, ResourceOrder, ActionUpdate}:          true,
	{RoleChef, ResourceInventory, ActionRead}:        true,
	{RoleChef, ResourceInventory, ActionUpdate}:      true,
	{RoleCustomer, ResourceMenuItem, ActionRead}:     true,
	{RoleCustomer, ResourceOrder, ActionCreate}:      true,
	{RoleCustomer, ResourceOrder, ActionRead}:        true,
}

// RoleAllows reports whether role may perform action on resource.
func RoleAllows(role Role, action Action, resource Resource) bool {
	return permissions[grant{role: role, resource: resource, action: action}]
}

// CheckPermission reports whether user may perform action on resource.
// A nil user (anonymous session) is denied everything.
func CheckPermission(user *User, action Action, resource Resource) bool {
	if user == nil {
		return false
	}
	return RoleAllows(user.Role, action, resource)
}
