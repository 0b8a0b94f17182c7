package handlers

import (
	"net/http"

	"rotharc/services/user"
	"rotharc/utils"

	"github.com/gin-gonic/gin"
)

const maxAvatarSize = 5 << 20

type ProfileHandler struct {
	Users user.UserService
}

func NewProfileHandler(users user.UserService) *ProfileHandler {
	return &ProfileHandler{Users: users}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	u, err := h.Users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.Users.UpdateProfile(c.Request.Context(), userID, req.FirstName, req.LastName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UploadAvatar handles POST /api/profile/avatar with a multipart "file" field.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing file", err.Error())
		return
	}
	if header.Size > maxAvatarSize {
		utils.JSONError(c, http.StatusRequestEntityTooLarge, "File too large", "avatars are limited to 5 MB")
		return
	}
	file, err := header.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Unreadable file", err.Error())
		return
	}
	defer file.Close()

	u, err := h.Users.UploadAvatar(c.Request.Context(), userID, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.Users.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
