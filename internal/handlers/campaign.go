package handlers

import (
	"errors"
	"net/http"

	"campaign_forum/internal/flash"
	"campaign_forum/internal/forms"
	"campaign_forum/internal/models"
	"campaign_forum/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgCampaignDeleted = "The Campaign was deleted."
	msgCantDelete      = "You can't delete a campaign you don't own."
	msgCantEdit        = "You can't edit a campaign you don't own."
)

func campaignPath(id string) string { return "/campaign/" + id }

func (h *Handler) listCampaigns(c *gin.Context) {
	campaigns, err := h.services.Campaigns.List(c.Request.Context())
	if err != nil {
		h.serverError(c, "campaign_list_failed", err)
		return
	}
	h.render(c, http.StatusOK, "campaigns.html", gin.H{
		"title":     "Campaigns",
		"campaigns": campaigns,
	})
}

func (h *Handler) showCampaign(c *gin.Context) {
	id := c.Param("id")
	campaign, err := h.services.Campaigns.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, "campaign_get_failed", err, "campaign_id", id)
		return
	}
	h.render(c, http.StatusOK, "campaign.html", gin.H{
		"title":    campaign.CandidateName,
		"campaign": campaign,
		"isAuthor": campaign.IsAuthor(actorID(c)),
	})
}

// deleteCampaign removes the campaign when the acting user wrote it. Either way the visitor
// lands back on the list with a notice.
func (h *Handler) deleteCampaign(c *gin.Context) {
	id := c.Param("id")
	err := h.services.Campaigns.Delete(c.Request.Context(), actorID(c), id)
	switch {
	case err == nil:
		h.addFlash(c, flash.Success(msgCampaignDeleted))
	case errors.Is(err, service.ErrPermissionDenied):
		h.addFlash(c, flash.Error(msgCantDelete))
	case errors.Is(err, service.ErrNotFound):
		h.notFound(c)
		return
	default:
		h.serverError(c, "campaign_delete_failed", err, "campaign_id", id)
		return
	}
	h.redirect(c, "/campaign/list")
}

func (h *Handler) newCampaignForm(c *gin.Context) {
	h.renderCampaignForm(c, "New Campaign", "/campaign/new", forms.Campaign{}, nil)
}

func (h *Handler) createCampaign(c *gin.Context) {
	form := forms.CampaignFrom(c.PostForm)
	fields, errs := form.Fields()
	if !errs.Empty() {
		h.renderCampaignForm(c, "New Campaign", "/campaign/new", form, errs)
		return
	}
	created, err := h.services.Campaigns.Create(c.Request.Context(), actorID(c), fields)
	if err != nil {
		h.serverError(c, "campaign_create_failed", err)
		return
	}
	h.redirect(c, campaignPath(created.ID))
}

func (h *Handler) editCampaignForm(c *gin.Context) {
	campaign, ok := h.loadOwnCampaign(c)
	if !ok {
		return
	}
	h.renderCampaignForm(c, "Edit Campaign", "/campaign/edit/"+campaign.ID, forms.CampaignFromModel(campaign), nil)
}

// updateCampaign checks ownership before it looks at the submitted form.
func (h *Handler) updateCampaign(c *gin.Context) {
	campaign, ok := h.loadOwnCampaign(c)
	if !ok {
		return
	}
	fields, errs := forms.CampaignFrom(c.PostForm).Fields()
	if !errs.Empty() {
		// the form goes back with what is stored, not the rejected submission
		h.renderCampaignForm(c, "Edit Campaign", "/campaign/edit/"+campaign.ID, forms.CampaignFromModel(campaign), errs)
		return
	}
	err := h.services.Campaigns.Update(c.Request.Context(), actorID(c), campaign.ID, fields)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNotFound):
		h.notFound(c)
		return
	case errors.Is(err, service.ErrPermissionDenied):
		h.addFlash(c, flash.Error(msgCantEdit))
	default:
		h.serverError(c, "campaign_update_failed", err, "campaign_id", campaign.ID)
		return
	}
	h.redirect(c, campaignPath(campaign.ID))
}

// loadOwnCampaign fetches the :id campaign for editing. When it returns false the response has
// already been written: 404, or a redirect to the campaign page for someone else's campaign.
func (h *Handler) loadOwnCampaign(c *gin.Context) (models.Campaign, bool) {
	id := c.Param("id")
	campaign, err := h.services.Campaigns.GetForEdit(c.Request.Context(), actorID(c), id)
	switch {
	case err == nil:
		return campaign, true
	case errors.Is(err, service.ErrNotFound):
		h.notFound(c)
	case errors.Is(err, service.ErrPermissionDenied):
		h.addFlash(c, flash.Error(msgCantEdit))
		h.redirect(c, campaignPath(id))
	default:
		h.serverError(c, "campaign_get_failed", err, "campaign_id", id)
	}
	return models.Campaign{}, false
}

func (h *Handler) renderCampaignForm(c *gin.Context, title, action string, form forms.Campaign, errs forms.Errors) {
	if errs == nil {
		errs = forms.Errors{}
	}
	h.render(c, http.StatusOK, "campaignform.html", gin.H{
		"title":  title,
		"action": action,
		"form":   form,
		"errors": errs,
	})
}
