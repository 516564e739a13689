package console

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/admin"
)

// maxFormMemory bounds multipart parsing; staged images stay well under it.
const maxFormMemory = 16 << 20

func (con *Console) registerRoutes() {
	r := con.engine

	r.GET("/", func(c *gin.Context) {
		if len(con.screens) == 0 {
			c.HTML(http.StatusOK, "errors/404.html", gin.H{"Path": "/"})
			return
		}
		c.Redirect(http.StatusSeeOther, "/screens/"+con.screens[0].Slug)
	})

	screens := r.Group("/screens/:slug")
	screens.Use(con.resolveScreen())
	{
		screens.GET("", con.handleScreen)
		screens.POST("/page", con.handlePage)
		screens.POST("/refresh", con.handleRefresh)
		screens.POST("/new", con.handleOpenCreate)
		screens.POST("/edit", con.handleOpenEdit)
		screens.POST("/cancel", con.handleCancel)
		screens.POST("/submit", con.handleSubmit)
		screens.POST("/remove/request", con.handleRemoveRequest)
		screens.POST("/remove/cancel", con.handleRemoveCancel)
		screens.POST("/remove/confirm", con.handleRemoveConfirm)
	}

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "errors/404.html", gin.H{"Path": c.Request.URL.Path})
	})
}

const screenContextKey = "console_screen"

// resolveScreen looks up the screen for the slug parameter and makes sure the
// operator session with the store API is live.
func (con *Console) resolveScreen() gin.HandlerFunc {
	return func(c *gin.Context) {
		screen, ok := con.bySlug[c.Param("slug")]
		if !ok {
			c.HTML(http.StatusNotFound, "errors/404.html", gin.H{"Path": c.Request.URL.Path})
			c.Abort()
			return
		}

		if err := con.session.Ensure(c.Request.Context()); err != nil {
			con.logf().Error("store api login failed", slog.Any("error", err))
			c.HTML(http.StatusBadGateway, "errors/500.html", gin.H{
				"Message": "cannot reach the store API: " + err.Error(),
			})
			c.Abort()
			return
		}

		c.Set(screenContextKey, screen)
		c.Next()
	}
}

func currentScreen(c *gin.Context) *Screen {
	return c.MustGet(screenContextKey).(*Screen)
}

// handleScreen renders the management page, fetching records on first visit.
func (con *Console) handleScreen(c *gin.Context) {
	screen := currentScreen(c)
	loadErr := screen.Load(c.Request.Context(), false)
	if loadErr != nil {
		con.logf().Warn("record load failed",
			slog.String("screen", screen.Slug),
			slog.Any("error", loadErr))
	}
	c.HTML(http.StatusOK, "admin/screen.html", con.buildScreenView(screen, loadErr))
}

func (con *Console) handlePage(c *gin.Context) {
	screen := currentScreen(c)
	if page, err := strconv.Atoi(c.PostForm("page")); err == nil {
		screen.Controller.SetPage(page)
	}
	redirectToScreen(c, screen)
}

func (con *Console) handleRefresh(c *gin.Context) {
	screen := currentScreen(c)
	if err := screen.Load(c.Request.Context(), true); err != nil {
		screen.SetFlash(err.Error())
	}
	redirectToScreen(c, screen)
}

func (con *Console) handleOpenCreate(c *gin.Context) {
	screen := currentScreen(c)
	if err := screen.Controller.OpenCreate(); err != nil {
		screen.SetFlash(err.Error())
	}
	redirectToScreen(c, screen)
}

func (con *Console) handleOpenEdit(c *gin.Context) {
	screen := currentScreen(c)
	if err := screen.Controller.OpenEdit(c.PostForm("id")); err != nil {
		screen.SetFlash(err.Error())
	}
	redirectToScreen(c, screen)
}

func (con *Console) handleCancel(c *gin.Context) {
	screen := currentScreen(c)
	if err := screen.Controller.Cancel(); err != nil {
		screen.SetFlash(err.Error())
	}
	redirectToScreen(c, screen)
}

// handleSubmit binds the posted form onto the form engine and submits.
// Validation and remote failures become flash messages; the modal stays open
// with the entered values intact.
func (con *Console) handleSubmit(c *gin.Context) {
	screen := currentScreen(c)
	ctrl := screen.Controller

	if err := bindForm(c, screen, ctrl); err != nil {
		screen.SetFlash(err.Error())
		redirectToScreen(c, screen)
		return
	}

	if err := ctrl.Submit(c.Request.Context()); err != nil {
		screen.SetFlash(err.Error())
	}
	redirectToScreen(c, screen)
}

// bindForm copies posted values and uploaded files into the controller,
// one call per declared field.
func bindForm(c *gin.Context, screen *Screen, ctrl *admin.CrudController) error {
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil &&
		!errors.Is(err, http.ErrNotMultipart) {
		return err
	}

	for _, f := range screen.Config.Fields {
		if f.Kind == admin.FieldFile {
			fh, err := c.FormFile(f.Key)
			if err != nil {
				continue // no new file chosen, keep what the form holds
			}
			file, err := readUpload(fh)
			if err != nil {
				return err
			}
			if err := ctrl.SetFile(f.Key, file); err != nil {
				return err
			}
			continue
		}
		if err := ctrl.SetField(f.Key, c.PostForm(f.Key)); err != nil {
			return err
		}
	}
	return nil
}

func readUpload(fh *multipart.FileHeader) (*admin.File, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &admin.File{Name: fh.Filename, Content: content}, nil
}

func (con *Console) handleRemoveRequest(c *gin.Context) {
	screen := currentScreen(c)
	if err := screen.Controller.RequestRemove(c.PostForm("id")); err != nil {
		screen.SetFlash(err.Error())
	}
	redirectToScreen(c, screen)
}

func (con *Console) handleRemoveCancel(c *gin.Context) {
	screen := currentScreen(c)
	screen.Controller.CancelRemove()
	redirectToScreen(c, screen)
}

func (con *Console) handleRemoveConfirm(c *gin.Context) {
	screen := currentScreen(c)
	ctrl := screen.Controller

	id := ctrl.PendingRemoval()
	if id == "" {
		redirectToScreen(c, screen)
		return
	}
	if err := ctrl.Remove(c.Request.Context(), id); err != nil {
		screen.SetFlash(err.Error())
	}
	redirectToScreen(c, screen)
}

func redirectToScreen(c *gin.Context, screen *Screen) {
	c.Redirect(http.StatusSeeOther, "/screens/"+screen.Slug)
}
