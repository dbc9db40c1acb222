package group

type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type UpdateGroupRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type GroupResponse struct {
	ID   int    `json:"groupId"`
	Name string `json:"name"`
}
