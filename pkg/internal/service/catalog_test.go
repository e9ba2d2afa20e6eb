package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/yeisme/novahub/pkg/internal/model"
	"github.com/yeisme/novahub/pkg/internal/storage/db"
)

// newTestDB 每个测试一个独立的内存库.
func newTestDB(t *testing.T) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&model.User{}, &model.App{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return &db.Client{DB: gdb}
}

// fakeBlobRouter 不触网的存储路由替身.
type fakeBlobRouter struct {
	external  bool
	storeErr  error
	iconCalls int
}

func (f *fakeBlobRouter) StoreIcon(_ context.Context, ownerID, name string, _ io.Reader, _ int64, _ string) (string, error) {
	f.iconCalls++

	return "https://cdn.test/logos/" + ownerID + "/" + name, nil
}

func (f *fakeBlobRouter) StoreBinary(_ context.Context, ownerID, filename string, _ io.Reader, _ int64) (string, bool, error) {
	if f.storeErr != nil {
		return "", false, f.storeErr
	}

	if f.external {
		return "https://assets.test/" + filename, true, nil
	}

	return "files/" + ownerID + "/" + filename, false, nil
}

func (f *fakeBlobRouter) ResolveURL(_ context.Context, locator string, external bool) (string, error) {
	if external {
		return locator, nil
	}

	return "signed://" + locator, nil
}

func newTestService(t *testing.T, router *fakeBlobRouter) *CatalogService {
	t.Helper()

	return &CatalogService{dbClient: newTestDB(t), blobs: router}
}

func mkUser(id, username string, admin bool) *model.User {
	return &model.User{ID: id, Username: username, IsAdmin: admin}
}

func TestUploadCreatesEntry(t *testing.T) {
	svc := newTestService(t, &fakeBlobRouter{external: true})
	ctx := context.Background()
	alice := mkUser("u1", "alice", false)

	payload := strings.NewReader("binary bytes")

	result, err := svc.Upload(ctx, alice, "my app.exe", payload, payload.Size())
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if result.File != "my_app.exe" {
		t.Errorf("expected sanitized file key my_app.exe, got %s", result.File)
	}

	if result.Name != "my app" {
		t.Errorf("expected display name from original filename, got %s", result.Name)
	}

	if result.Type != "PC" {
		t.Errorf("expected type PC, got %s", result.Type)
	}

	var app model.App
	if err := svc.dbClient.Where("file = ?", "my_app.exe").First(&app).Error; err != nil {
		t.Fatalf("entry not persisted: %v", err)
	}

	if !app.External || app.StoragePath != "https://assets.test/my_app.exe" {
		t.Errorf("expected external locator, got external=%v path=%s", app.External, app.StoragePath)
	}

	if app.Owner != "alice" || app.OwnerID != "u1" {
		t.Errorf("unexpected ownership: %s/%s", app.Owner, app.OwnerID)
	}
}

func TestUploadReplacesSameKeyKeepsIcon(t *testing.T) {
	svc := newTestService(t, &fakeBlobRouter{external: true})
	ctx := context.Background()
	alice := mkUser("u1", "alice", false)
	bob := mkUser("u2", "bob", false)

	first := strings.NewReader("v1")
	if _, err := svc.Upload(ctx, alice, "tool.zip", first, first.Size()); err != nil {
		t.Fatalf("first upload: %v", err)
	}

	icon := strings.NewReader("png bytes")
	if _, err := svc.UpdateIcon(ctx, alice, "tool.zip", "icon.png", icon, icon.Size()); err != nil {
		t.Fatalf("update icon: %v", err)
	}

	second := strings.NewReader("v2")
	if _, err := svc.Upload(ctx, bob, "tool.zip", second, second.Size()); err != nil {
		t.Fatalf("second upload: %v", err)
	}

	var apps []model.App
	if err := svc.dbClient.Where("file = ?", "tool.zip").Find(&apps).Error; err != nil {
		t.Fatalf("query: %v", err)
	}

	if len(apps) != 1 {
		t.Fatalf("expected single row for key, got %d", len(apps))
	}

	if apps[0].Owner != "bob" || apps[0].OwnerID != "u2" {
		t.Errorf("expected ownership replaced by latest upload, got %s/%s", apps[0].Owner, apps[0].OwnerID)
	}

	if apps[0].PreviewIcon == "" {
		t.Error("expected preview icon to survive re-upload")
	}
}

func TestUploadValidation(t *testing.T) {
	svc := newTestService(t, &fakeBlobRouter{external: true})
	ctx := context.Background()
	alice := mkUser("u1", "alice", false)

	if _, err := svc.Upload(ctx, nil, "a.exe", strings.NewReader("x"), 1); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("anonymous upload: expected ErrUnauthenticated, got %v", err)
	}

	if _, err := svc.Upload(ctx, alice, "a.exe", nil, 0); !errors.Is(err, ErrValidation) {
		t.Errorf("missing payload: expected ErrValidation, got %v", err)
	}

	if _, err := svc.Upload(ctx, alice, "...", strings.NewReader("x"), 1); !errors.Is(err, ErrValidation) {
		t.Errorf("unusable filename: expected ErrValidation, got %v", err)
	}
}

func TestUploadStoreFailureLeavesCatalogUntouched(t *testing.T) {
	router := &fakeBlobRouter{storeErr: errors.New("asset host down")}
	svc := newTestService(t, router)
	ctx := context.Background()

	payload := strings.NewReader("bytes")
	if _, err := svc.Upload(ctx, mkUser("u1", "alice", false), "a.exe", payload, payload.Size()); err == nil {
		t.Fatal("expected store failure to propagate")
	}

	var count int64
	svc.dbClient.Model(&model.App{}).Count(&count)

	if count != 0 {
		t.Errorf("expected no catalog entry after store failure, got %d", count)
	}
}

func TestDeleteAuthorization(t *testing.T) {
	svc := newTestService(t, &fakeBlobRouter{external: true})
	ctx := context.Background()
	alice := mkUser("u1", "alice", false)
	mallory := mkUser("u2", "mallory", false)
	admin := mkUser("u3", "root", true)

	seed := func(file string) {
		payload := strings.NewReader("x")
		if _, err := svc.Upload(ctx, alice, file, payload, payload.Size()); err != nil {
			t.Fatalf("seed upload: %v", err)
		}
	}

	seed("a.exe")
	seed("b.exe")

	if err := svc.Delete(ctx, nil, "a.exe"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("anonymous delete: expected ErrUnauthenticated, got %v", err)
	}

	if err := svc.Delete(ctx, mallory, "a.exe"); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner delete: expected ErrForbidden, got %v", err)
	}

	if err := svc.Delete(ctx, alice, "a.exe"); err != nil {
		t.Errorf("owner delete: %v", err)
	}

	if err := svc.Delete(ctx, admin, "b.exe"); err != nil {
		t.Errorf("admin delete: %v", err)
	}

	// 删除不存在的键是幂等 no-op
	if err := svc.Delete(ctx, alice, "ghost.exe"); err != nil {
		t.Errorf("delete missing key: expected nil, got %v", err)
	}

	var count int64
	svc.dbClient.Model(&model.App{}).Count(&count)

	if count != 0 {
		t.Errorf("expected empty catalog, got %d rows", count)
	}
}

func TestListCanDeleteFlags(t *testing.T) {
	svc := newTestService(t, &fakeBlobRouter{external: true})
	ctx := context.Background()
	alice := mkUser("u1", "alice", false)
	bob := mkUser("u2", "bob", false)
	admin := mkUser("u3", "root", true)

	for owner, file := range map[*model.User]string{alice: "a.exe", bob: "b.apk"} {
		payload := strings.NewReader("x")
		if _, err := svc.Upload(ctx, owner, file, payload, payload.Size()); err != nil {
			t.Fatalf("seed upload: %v", err)
		}
	}

	flags := func(viewer *model.User) map[string]bool {
		out := map[string]bool{}
		for _, e := range svc.List(ctx, viewer) {
			out[e.File] = e.CanDelete
		}

		return out
	}

	anon := flags(nil)
	if anon["a.exe"] || anon["b.apk"] {
		t.Error("anonymous viewer must not see delete flags")
	}

	own := flags(alice)
	if !own["a.exe"] || own["b.apk"] {
		t.Errorf("owner flags wrong: %v", own)
	}

	all := flags(admin)
	if !all["a.exe"] || !all["b.apk"] {
		t.Errorf("admin flags wrong: %v", all)
	}
}

func TestListSoftFailsOnBackendError(t *testing.T) {
	svc := newTestService(t, &fakeBlobRouter{external: true})
	ctx := context.Background()

	// 表被拿掉后读路径必须退化为空列表而不是报错
	if err := svc.dbClient.Migrator().DropTable(&model.App{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	entries := svc.List(ctx, mkUser("u1", "alice", false))
	if len(entries) != 0 {
		t.Errorf("expected empty catalog on backend failure, got %d entries", len(entries))
	}
}

func TestDownloadURL(t *testing.T) {
	svc := newTestService(t, &fakeBlobRouter{external: true})
	ctx := context.Background()
	alice := mkUser("u1", "alice", false)

	payload := strings.NewReader("x")
	if _, err := svc.Upload(ctx, alice, "a.exe", payload, payload.Size()); err != nil {
		t.Fatalf("seed upload: %v", err)
	}

	url, err := svc.DownloadURL(ctx, "a.exe")
	if err != nil {
		t.Fatalf("download url: %v", err)
	}

	if url != "https://assets.test/a.exe" {
		t.Errorf("expected external locator verbatim, got %s", url)
	}

	if _, err := svc.DownloadURL(ctx, "missing.exe"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing key: expected ErrNotFound, got %v", err)
	}
}

func TestDownloadURLInternalObjectIsSigned(t *testing.T) {
	svc := newTestService(t, &fakeBlobRouter{external: false})
	ctx := context.Background()
	alice := mkUser("u1", "alice", false)

	payload := strings.NewReader("x")
	if _, err := svc.Upload(ctx, alice, "a.zip", payload, payload.Size()); err != nil {
		t.Fatalf("seed upload: %v", err)
	}

	url, err := svc.DownloadURL(ctx, "a.zip")
	if err != nil {
		t.Fatalf("download url: %v", err)
	}

	if url != "signed://files/u1/a.zip" {
		t.Errorf("expected signed internal url, got %s", url)
	}
}

func TestUpdateIconAuthorization(t *testing.T) {
	svc := newTestService(t, &fakeBlobRouter{external: true})
	ctx := context.Background()
	alice := mkUser("u1", "alice", false)
	mallory := mkUser("u2", "mallory", false)

	payload := strings.NewReader("x")
	if _, err := svc.Upload(ctx, alice, "a.exe", payload, payload.Size()); err != nil {
		t.Fatalf("seed upload: %v", err)
	}

	icon := strings.NewReader("png")
	if _, err := svc.UpdateIcon(ctx, mallory, "a.exe", "i.png", icon, icon.Size()); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner icon update: expected ErrForbidden, got %v", err)
	}

	icon = strings.NewReader("png")
	if _, err := svc.UpdateIcon(ctx, alice, "ghost.exe", "i.png", icon, icon.Size()); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing entry: expected ErrNotFound, got %v", err)
	}

	icon = strings.NewReader("png")

	url, err := svc.UpdateIcon(ctx, alice, "a.exe", "i.png", icon, icon.Size())
	if err != nil {
		t.Fatalf("owner icon update: %v", err)
	}

	var app model.App
	if err := svc.dbClient.Where("file = ?", "a.exe").First(&app).Error; err != nil {
		t.Fatalf("query: %v", err)
	}

	if app.PreviewIcon != url {
		t.Errorf("expected preview icon %s persisted, got %s", url, app.PreviewIcon)
	}
}

func TestChangeUsernameRefreshesOwnerName(t *testing.T) {
	svc := newTestService(t, &fakeBlobRouter{external: true})
	ctx := context.Background()
	alice := mkUser("u1", "alice", false)

	if err := svc.dbClient.Create(&model.User{ID: "u1", Username: "alice", Email: "alice@hub.com"}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	payload := strings.NewReader("x")
	if _, err := svc.Upload(ctx, alice, "a.exe", payload, payload.Size()); err != nil {
		t.Fatalf("seed upload: %v", err)
	}

	if err := svc.ChangeUsername(ctx, alice, "alicia"); err != nil {
		t.Fatalf("change username: %v", err)
	}

	var user model.User
	if err := svc.dbClient.Where("id = ?", "u1").First(&user).Error; err != nil {
		t.Fatalf("query user: %v", err)
	}

	if user.Username != "alicia" {
		t.Errorf("expected renamed profile, got %s", user.Username)
	}

	var app model.App
	if err := svc.dbClient.Where("file = ?", "a.exe").First(&app).Error; err != nil {
		t.Fatalf("query app: %v", err)
	}

	if app.Owner != "alicia" {
		t.Errorf("expected catalog owner name refreshed, got %s", app.Owner)
	}
}

func TestAdminOpsSilentNoopForNonAdmin(t *testing.T) {
	svc := newTestService(t, &fakeBlobRouter{external: true})
	ctx := context.Background()
	mallory := mkUser("u2", "mallory", false)

	if err := svc.dbClient.Create(&model.User{ID: "u1", Username: "alice", Email: "alice@hub.com"}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if err := svc.AdminDeleteUser(ctx, mallory, "alice"); err != nil {
		t.Errorf("non-admin delete_user: expected silent nil, got %v", err)
	}

	if err := svc.AdminRename(ctx, mallory, "alice", "pwned"); err != nil {
		t.Errorf("non-admin rename: expected silent nil, got %v", err)
	}

	var user model.User
	if err := svc.dbClient.Where("id = ?", "u1").First(&user).Error; err != nil {
		t.Fatalf("profile must survive non-admin calls: %v", err)
	}

	if user.Username != "alice" {
		t.Errorf("profile mutated by non-admin call: %s", user.Username)
	}
}

func TestAdminOps(t *testing.T) {
	svc := newTestService(t, &fakeBlobRouter{external: true})
	ctx := context.Background()
	admin := mkUser("u9", "root", true)
	alice := mkUser("u1", "alice", false)

	if err := svc.dbClient.Create(&model.User{ID: "u1", Username: "alice", Email: "alice@hub.com"}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	payload := strings.NewReader("x")
	if _, err := svc.Upload(ctx, alice, "a.exe", payload, payload.Size()); err != nil {
		t.Fatalf("seed upload: %v", err)
	}

	if err := svc.AdminRename(ctx, admin, "alice", "alicia"); err != nil {
		t.Fatalf("admin rename: %v", err)
	}

	var app model.App
	if err := svc.dbClient.Where("file = ?", "a.exe").First(&app).Error; err != nil {
		t.Fatalf("query app: %v", err)
	}

	if app.Owner != "alicia" {
		t.Errorf("expected owner display name refreshed, got %s", app.Owner)
	}

	if err := svc.AdminDeleteUser(ctx, admin, "alicia"); err != nil {
		t.Fatalf("admin delete user: %v", err)
	}

	var count int64
	svc.dbClient.Model(&model.User{}).Where("username = ?", "alicia").Count(&count)

	if count != 0 {
		t.Error("expected profile removed by admin delete")
	}

	// 条目不级联：OwnerID 悬挂但目录保持可浏览
	if err := svc.dbClient.Where("file = ?", "a.exe").First(&app).Error; err != nil {
		t.Errorf("catalog entry must survive owner deletion: %v", err)
	}
}
