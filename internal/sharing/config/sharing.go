package config

// SharingConfig - настройки ссылок на заметки.
type SharingConfig struct {
	// PublicURL - базовый адрес страницы просмотра. Пустое значение дает относительные ссылки.
	PublicURL string `yaml:"public_url" env:"SHARING_PUBLIC_URL" env-default:""`
}
