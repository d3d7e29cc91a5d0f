// internal/bot/commands.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"site-manager/internal/domain"
	"site-manager/internal/password"
	"site-manager/internal/search"
	"site-manager/internal/storage"
	"site-manager/internal/validator"
	"strconv"
	"strings"
)

const (
	msgUnauthorized = "No estás autorizado para usar este bot."
	msgUnknown      = "Comando desconocido. Escribe /help"
	msgConfirmWord  = "confirmar"
	autoPassword    = "auto"
	dateLayout      = "2/1/2006"
)

const helpText = "Gestor de contraseñas\n\n" +
	"Comandos:\n" +
	"/categorias [filtro]: lista las categorías\n" +
	"/sites <categoría> [filtro]: lista los sites de una categoría\n" +
	"/ver <site>: muestra un site con su contraseña\n" +
	"/nueva_categoria <nombre>: añade una categoría\n" +
	"/borrar_categoria <categoría> confirmar: elimina la categoría y su contenido\n" +
	"/nuevo_site <categoría> nombre | url | usuario | contraseña | descripción: añade un site (contraseña \"auto\" genera una)\n" +
	"/borrar_site <site> confirmar: elimina un site\n" +
	"/generar [longitud]: genera una contraseña"

func (b *Bot) reply(ctx context.Context, text string) string {
	cmd, args := splitCommand(text)
	slog.Debug("Telegram command", "command", cmd)

	switch cmd {
	case "start", "help":
		return helpText
	case "categorias":
		return b.listCategories(ctx, sanitizeInput(args))
	case "sites":
		return b.listSites(ctx, sanitizeInput(args))
	case "ver":
		return b.showSite(ctx, sanitizeInput(args))
	case "nueva_categoria":
		return b.createCategory(ctx, sanitizeInput(args))
	case "borrar_categoria":
		return b.deleteCategory(ctx, sanitizeInput(args))
	case "nuevo_site":
		// not sanitized: the password may contain spaces
		return b.createSite(ctx, args)
	case "borrar_site":
		return b.deleteSite(ctx, sanitizeInput(args))
	case "generar":
		return b.generate(sanitizeInput(args))
	default:
		return msgUnknown
	}
}

func (b *Bot) listCategories(ctx context.Context, filter string) string {
	categories, err := b.store.ListCategories(ctx)
	if err != nil {
		slog.Error("Error cargando categorías", "error", err)
		return "Error cargando categorías"
	}
	categories = search.Categories(categories, filter)
	if len(categories) == 0 {
		return "No hay categorías."
	}

	lines := []string{"Categorías:"}
	for _, cat := range categories {
		lines = append(lines, fmt.Sprintf("[%s] %s", cat.ID, cat.Name))
	}
	return strings.Join(lines, "\n")
}

func (b *Bot) listSites(ctx context.Context, args string) string {
	rawID, filter, _ := strings.Cut(args, " ")
	categoryID, err := domain.ParseID(rawID)
	if err != nil {
		return "Usa: /sites <categoría> [filtro]"
	}

	sites, err := b.store.ListSites(ctx)
	if err != nil {
		slog.Error("Error cargando sites", "error", err, "category_id", categoryID)
		return "Error cargando sites"
	}
	sites = search.Sites(sites, categoryID, filter)
	if len(sites) == 0 {
		return "No hay sites para esta categoría."
	}

	lines := []string{"Sites:"}
	for _, s := range sites {
		lines = append(lines, fmt.Sprintf("[%s] %s (%s)", s.ID, s.Name, s.User))
	}
	return strings.Join(lines, "\n")
}

func (b *Bot) showSite(ctx context.Context, args string) string {
	id, err := domain.ParseID(args)
	if err != nil {
		return "Usa: /ver <site>"
	}

	sites, err := b.store.ListSites(ctx)
	if err != nil {
		slog.Error("Error cargando sites", "error", err, "site_id", id)
		return "Error cargando sites"
	}
	for _, s := range sites {
		if s.ID != id {
			continue
		}
		lines := []string{
			"Nombre: " + s.Name,
			"URL: " + s.URL,
			"Usuario: " + s.User,
			"Contraseña: " + s.Password,
		}
		if s.Description != "" {
			lines = append(lines, "Descripción: "+s.Description)
		}
		lines = append(lines, "Fecha: "+s.CreatedOn(b.now()).Format(dateLayout))
		return strings.Join(lines, "\n")
	}
	return "Site no encontrado."
}

func (b *Bot) createCategory(ctx context.Context, name string) string {
	if err := validator.Struct(validator.CategoryForm{Name: name}); err != nil {
		return "El nombre es obligatorio"
	}

	created, err := b.store.CreateCategory(ctx, name)
	if err != nil {
		slog.Error("Error al añadir categoría", "error", err, "name", name)
		return "Error al añadir categoría"
	}
	slog.Info("Category created from Telegram", "id", created.ID, "name", created.Name)
	return fmt.Sprintf("Categoría añadida: [%s] %s", created.ID, created.Name)
}

// confirmedID parses "<id> [confirmar]".
func confirmedID(args string) (domain.ID, bool, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 || len(fields) > 2 {
		return "", false, domain.ErrInvalidID
	}
	id, err := domain.ParseID(fields[0])
	if err != nil {
		return "", false, err
	}
	confirmed := len(fields) == 2 && strings.EqualFold(fields[1], msgConfirmWord)
	return id, confirmed, nil
}

func (b *Bot) deleteCategory(ctx context.Context, args string) string {
	id, confirmed, err := confirmedID(args)
	if err != nil {
		return "Usa: /borrar_categoria <categoría> confirmar"
	}
	if !confirmed {
		return fmt.Sprintf("¿Eliminar categoría y contenido? Repite con: /borrar_categoria %s %s", id, msgConfirmWord)
	}

	err = b.store.DeleteCategory(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Error("Error al eliminar categoría", "error", err, "id", id)
		return "Ocurrió un error de red al intentar eliminar la categoría."
	}
	slog.Info("Category deleted from Telegram", "id", id)
	return "Categoría eliminada."
}

func (b *Bot) deleteSite(ctx context.Context, args string) string {
	id, confirmed, err := confirmedID(args)
	if err != nil {
		return "Usa: /borrar_site <site> confirmar"
	}
	if !confirmed {
		return fmt.Sprintf("¿Eliminar sitio? Repite con: /borrar_site %s %s", id, msgConfirmWord)
	}

	err = b.store.DeleteSite(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Error("Error al eliminar site", "error", err, "id", id)
		return "Ocurrió un error al intentar eliminar el site."
	}
	slog.Info("Site deleted from Telegram", "id", id)
	return "Site eliminado."
}

const newSiteUsage = "Usa: /nuevo_site <categoría> nombre | url | usuario | contraseña | descripción"

func (b *Bot) createSite(ctx context.Context, args string) string {
	rawID, rest, _ := strings.Cut(sanitizeHead(args), " ")
	categoryID, err := domain.ParseID(rawID)
	if err != nil {
		return newSiteUsage
	}

	parts := strings.Split(rest, "|")
	if len(parts) < 4 || len(parts) > 5 {
		return newSiteUsage
	}
	form := validator.SiteForm{
		Name:     parts[0],
		URL:      parts[1],
		User:     parts[2],
		Password: parts[3],
	}
	if len(parts) == 5 {
		form.Description = parts[4]
	}
	form = form.Trimmed()

	generated := strings.EqualFold(form.Password, autoPassword)
	if generated {
		form.Password, err = b.passwords.Generate()
		if err != nil {
			slog.Error("Password generation failed", "error", err)
			return "No se pudo generar la contraseña"
		}
	}

	if res := validator.CheckSite(form); !res.Valid() {
		lines := []string{"Por favor, revisa los campos:"}
		for _, field := range validator.SiteFields {
			if msg := res.Message(field); msg != "" {
				lines = append(lines, "- "+msg)
			}
		}
		return strings.Join(lines, "\n")
	}

	created, err := b.store.CreateSite(ctx, domain.NewSite{
		Name:        form.Name,
		URL:         form.URL,
		User:        form.User,
		Password:    form.Password,
		Description: form.Description,
		CategoryID:  categoryID,
	})
	if err != nil {
		slog.Error("Error al conectar con el servidor", "error", err, "category_id", categoryID)
		return "Error al conectar con el servidor"
	}

	slog.Info("Site created from Telegram", "id", created.ID, "category_id", categoryID)
	reply := fmt.Sprintf("Site guardado: [%s] %s", created.ID, form.Name)
	if generated {
		reply += "\nContraseña generada: " + form.Password
	}
	return reply
}

// sanitizeHead normalises the whitespace between the category id and the
// first field, leaving the fields themselves untouched.
func sanitizeHead(args string) string {
	head, rest, found := strings.Cut(args, "|")
	head = sanitizeInput(head)
	if !found {
		return head
	}
	return head + " |" + rest
}

func (b *Bot) generate(args string) string {
	length := password.DefaultLength
	if args != "" {
		n, err := strconv.Atoi(args)
		if err != nil {
			return "Usa: /generar [longitud]"
		}
		length = n
	}

	generated, err := b.passwords.GenerateN(length)
	switch {
	case errors.Is(err, password.ErrTooShort), errors.Is(err, password.ErrTooLong):
		return fmt.Sprintf("La longitud debe estar entre %d y %d", password.MinLength, password.MaxLength)
	case err != nil:
		slog.Error("Password generation failed", "error", err)
		return "No se pudo generar la contraseña"
	}
	return generated
}
