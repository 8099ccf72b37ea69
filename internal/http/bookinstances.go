package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/forms"
)

const bookInstanceListURL = "/catalog/bookinstances"

type BookInstancesController struct {
	views
	instances BookInstanceService
}

func NewBookInstancesController(instances BookInstanceService, v views) *BookInstancesController {
	return &BookInstancesController{views: v, instances: instances}
}

func (ic *BookInstancesController) List(c *gin.Context) {
	instances, err := ic.instances.ListBookInstances(c.Request.Context())
	if err != nil {
		ic.renderError(c, err)
		return
	}
	ic.render(c, http.StatusOK, "bookinstance_list", gin.H{
		"Title":     "Book Instance List",
		"Instances": instances,
	})
}

func (ic *BookInstancesController) Detail(c *gin.Context) {
	id, ok := ic.idParam(c)
	if !ok {
		return
	}
	instance, err := ic.instances.BookInstanceDetail(c.Request.Context(), id)
	if err != nil {
		ic.renderError(c, err)
		return
	}
	ic.render(c, http.StatusOK, "bookinstance_detail", gin.H{
		"Title":    "Book: " + instance.Book.Title,
		"Instance": instance,
	})
}

func (ic *BookInstancesController) CreateForm(c *gin.Context) {
	books, err := ic.instances.BookInstanceOptions(c.Request.Context())
	if err != nil {
		ic.renderError(c, err)
		return
	}
	form := forms.BookInstanceForm{Book: c.Query("book")}
	form.Sanitize()
	ic.renderForm(c, "Create BookInstance", form, books, nil)
}

func (ic *BookInstancesController) Create(c *gin.Context) {
	form, errs, err := bindForm[forms.BookInstanceForm](c)
	if err != nil {
		ic.renderStatus(c, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if len(errs) > 0 {
		ic.rerenderForm(c, "Create BookInstance", form, errs)
		return
	}

	instance := form.Instance(0)
	if err := ic.instances.CreateBookInstance(c.Request.Context(), instance); err != nil {
		ic.renderError(c, err)
		return
	}
	ic.redirect(c, instance.URL(), "Copy created.")
}

func (ic *BookInstancesController) UpdateForm(c *gin.Context) {
	id, ok := ic.idParam(c)
	if !ok {
		return
	}
	edit, err := ic.instances.EditBookInstance(c.Request.Context(), id)
	if err != nil {
		ic.renderError(c, err)
		return
	}
	ic.renderForm(c, "Update BookInstance", forms.BookInstanceFormFrom(*edit.Instance), edit.Books, nil)
}

func (ic *BookInstancesController) Update(c *gin.Context) {
	id, ok := ic.idParam(c)
	if !ok {
		return
	}
	form, errs, err := bindForm[forms.BookInstanceForm](c)
	if err != nil {
		ic.renderStatus(c, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if len(errs) > 0 {
		ic.rerenderForm(c, "Update BookInstance", form, errs)
		return
	}

	instance := form.Instance(id)
	if err := ic.instances.UpdateBookInstance(c.Request.Context(), instance); err != nil {
		ic.renderError(c, err)
		return
	}
	ic.redirect(c, instance.URL(), "Copy updated.")
}

func (ic *BookInstancesController) DeleteForm(c *gin.Context) {
	id, ok := ic.idParam(c)
	if !ok {
		return
	}
	d, err := ic.instances.InspectBookInstanceDelete(c.Request.Context(), id)
	if err != nil {
		ic.renderError(c, err)
		return
	}
	// Only the POST treats a missing record as already deleted.
	if d.Outcome == catalog.DeleteAbsent {
		ic.renderError(c, &catalog.NotFoundError{Kind: catalog.KindBookInstance, ID: id})
		return
	}
	ic.renderDeletion(c, d, "")
}

func (ic *BookInstancesController) Delete(c *gin.Context) {
	id, ok := ic.idParam(c)
	if !ok {
		return
	}
	d, err := ic.instances.DeleteBookInstance(c.Request.Context(), id)
	if err != nil {
		ic.renderError(c, err)
		return
	}
	ic.renderDeletion(c, d, "Copy deleted.")
}

func (ic *BookInstancesController) rerenderForm(c *gin.Context, title string, form forms.BookInstanceForm, errs forms.Errors) {
	books, err := ic.instances.BookInstanceOptions(c.Request.Context())
	if err != nil {
		ic.renderError(c, err)
		return
	}
	ic.renderForm(c, title, form, books, errs)
}

func (ic *BookInstancesController) renderForm(c *gin.Context, title string, form forms.BookInstanceForm, books []entities.Book, errs forms.Errors) {
	ic.render(c, http.StatusOK, "bookinstance_form", gin.H{
		"Title":    title,
		"Form":     form,
		"Books":    books,
		"Statuses": entities.BookInstanceStatuses,
		"Errors":   errs,
	})
}

func (ic *BookInstancesController) renderDeletion(c *gin.Context, d *catalog.Deletion[entities.BookInstance, struct{}], flash string) {
	switch d.Outcome {
	case catalog.DeleteAbsent:
		ic.redirect(c, bookInstanceListURL, "")
	case catalog.DeleteDone:
		ic.redirect(c, bookInstanceListURL, flash)
	default:
		ic.render(c, http.StatusOK, "bookinstance_delete", gin.H{
			"Title":    "Delete BookInstance",
			"Instance": d.Entity,
		})
	}
}
