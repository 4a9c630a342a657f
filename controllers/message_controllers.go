package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campushub/lms-app/models"
	"github.com/campushub/lms-app/notifier"
	"github.com/campushub/lms-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MessageController struct {
	DB       *gorm.DB
	Notifier *notifier.Notifier
}

func NewMessageController(db *gorm.DB, n *notifier.Notifier) *MessageController {
	return &MessageController{DB: db, Notifier: n}
}

// GetConversations lists the caller's conversations.
func (mc *MessageController) GetConversations(c *gin.Context) {
	userID, _ := currentUserID(c)

	var participantRows []models.ConversationParticipant
	if err := mc.DB.Where("user_id = ?", userID).Find(&participantRows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	ids := make([]uint, 0, len(participantRows))
	for _, p := range participantRows {
		ids = append(ids, p.ConversationID)
	}

	var conversations []models.Conversation
	if len(ids) > 0 {
		if err := mc.DB.Preload("Participants.User").
			Where("id IN ?", ids).
			Find(&conversations).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Conversations", conversations)
}

// CreateConversation starts a conversation between the caller and the
// listed users.
func (mc *MessageController) CreateConversation(c *gin.Context) {
	var req struct {
		ParticipantIDs []uint `json:"participant_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID, _ := currentUserID(c)

	var count int64
	if err := mc.DB.Model(&models.User{}).Where("id IN ?", req.ParticipantIDs).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if count != int64(len(req.ParticipantIDs)) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown participant"))
		return
	}

	conversation := models.Conversation{}
	err := mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&conversation).Error; err != nil {
			return err
		}

		members := append([]uint{userID}, req.ParticipantIDs...)
		seen := make(map[uint]bool)
		for _, id := range members {
			if seen[id] {
				continue
			}
			seen[id] = true
			participant := models.ConversationParticipant{
				ConversationID: conversation.ID,
				UserID:         id,
			}
			if err := tx.Create(&participant).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Conversation created", conversation)
}

// GetMessages lists a conversation's messages, oldest first. Only
// participants may read.
func (mc *MessageController) GetMessages(c *gin.Context) {
	conversationID, _ := strconv.Atoi(c.Param("conversation_id"))
	userID, _ := currentUserID(c)

	if !mc.isParticipant(uint(conversationID), userID) {
		utils.RespondError(c, http.StatusNotFound, errors.New("conversation not found"))
		return
	}

	var messages []models.Message
	if err := mc.DB.Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Messages", messages)
}

// SendMessage appends a message and notifies the other participants.
func (mc *MessageController) SendMessage(c *gin.Context) {
	conversationID, _ := strconv.Atoi(c.Param("conversation_id"))
	userID, _ := currentUserID(c)

	if !mc.isParticipant(uint(conversationID), userID) {
		utils.RespondError(c, http.StatusNotFound, errors.New("conversation not found"))
		return
	}

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	message := models.Message{
		ConversationID: uint(conversationID),
		SenderID:       userID,
		Body:           req.Body,
	}
	if err := mc.DB.Create(&message).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	recipients, err := mc.Notifier.OtherParticipants(uint(conversationID), userID)
	if err != nil {
		utils.ErrorLogger.Printf("message %d: resolving participants failed: %v", message.ID, err)
	} else {
		actorName := "Someone"
		var sender models.User
		if err := mc.DB.First(&sender, userID).Error; err == nil {
			actorName = sender.Name
		}
		results := mc.Notifier.Notify(notifier.NewMessage(message, actorName, recipients))
		reportDeliveries("message sent", results)
	}

	utils.RespondJSON(c, http.StatusCreated, "Message sent", message)
}

func (mc *MessageController) isParticipant(conversationID, userID uint) bool {
	var count int64
	mc.DB.Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count)
	return count > 0
}
