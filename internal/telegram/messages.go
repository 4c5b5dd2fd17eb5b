package telegram

const (
	textHelp = "📚 *Comandos Disponibles:*\n\n" +
		"/peli <título> - Buscar película\n" +
		"/serie <título> - Buscar serie\n" +
		"/ver <título> - Solicitar archivo del canal\n" +
		"/populares - Ver tendencias\n" +
		"/aleatorio - Recomendación sorpresa\n" +
		"/favoritos - Tus favoritos\n" +
		"/sinanuncios - 🚫 Cómo bloquear publicidad\n" +
		"\n_También puedes escribir simplemente el título para una búsqueda inteligente._"

	textAdBlock = "🚫 *Cómo Bloquear Publicidad en Telegram/Móvil* 🚫\n\n" +
		"Como bot, no puedo \"instalar\" un bloqueador en tu teléfono, pero TÚ sí puedes configurarlo gratis usando *DNS Privado*.\n\n" +
		"🤖 *ANDROID:*\n" +
		"1. Ve a *Ajustes* > *Redes / Conexiones*.\n" +
		"2. Busca *DNS Privado*.\n" +
		"3. Selecciona \"Nombre de host del proveedor\" y escribe:\n" +
		"`dns.adguard.com`\n" +
		"4. Guardar.\n\n" +
		"🍎 *iOS / IPHONE:*\n" +
		"1. Debes descargar un perfil de DNS (es fácil).\n" +
		"2. Busca en Google \"AdGuard DNS Profile iOS\" o instala la app de AdGuard.\n\n" +
		"✅ *Una vez hecho, los reproductores cargarán limpios.*"

	textAdminPanel = "🔧 *Panel de Administración*\n\n" +
		"/stats - Ver estadísticas\n" +
		"/info <id> - Informe de usuario (o responde a un mensaje)\n" +
		"/allow <id> - Autorizar usuario\n" +
		"/ban <id> - Bloquear usuario\n" +
		"/unban <id> - Desbloquear usuario\n" +
		"/mantenimiento - Activar/desactivar mantenimiento\n" +
		"/broadcast <texto> - Anuncio a todos los usuarios\n" +
		"/registrar Título | Año - Indexar (respondiendo a un archivo)"

	textAdvisory = "\n\n⚠️ *Nota Importante*: Los reproductores online son externos y contienen PUBLICIDAD. " +
		"\n🛡️ *Se recomienda usar un bloqueador de anuncios (AdBlock) o navegador Brave.*" +
		"\n🔊 *Audio*: Multi-lenguaje (Busca el icono de engranaje/bandera en el player)."

	textAdvisoryShort = "\n\n⚠️ *Usa AdBlock para evitar publicidad.*\n🔊 El audio suele ser seleccionable en el reproductor."

	textNotFound      = "❌ No se encontraron resultados. Intenta ser más específico."
	textSearchFailed  = "❌ Error buscando en internet."
	textDetailsFailed = "❌ Error al obtener detalles."
	textInternalError = "❌ Error interno."
	textSendFailed    = "❌ Error enviando archivo."

	textBanned         = "🚫 Has sido bloqueado del bot por un administrador."
	textUnbanned       = "✅ Has sido desbloqueado. Puedes usar el bot nuevamente."
	textMaintenance    = "🛠️ El bot está en mantenimiento. Vuelve a intentarlo más tarde."
	textNotWhitelisted = "🔒 Este bot es privado. Pide acceso al administrador."
	textAdminOnly      = "⛔ Solo para administradores."

	textNoFavorites     = "💔 No tienes favoritos aún. ¡Agrega algunos!"
	textEmptyCollection = "🎲 La colección está vacía. Usa /populares para ver qué hay nuevo en el mundo."
	textRandomPick      = "🎲 *Recomendación de la Casa*\n\n¡He seleccionado algo de nuestra colección para ti!"

	textAlreadyRequested = "⚠️ Ya has solicitado esto. Paciencia."
	textRequested        = "✅ Solicitud registrada. Te avisaremos cuando la subamos."
	textAlreadyFavorite  = "⚠️ Ya está en favoritos"
	textFavoriteAdded    = "❤️ Añadido a Favoritos"

	textRegisterNeedsFile = "⚠️ Debes responder a un archivo de video o documento."
	textRegisterUsage     = "⚠️ Formato: /registrar Título | Año"
	textIngestUnparsed    = "⚠️ No pude leer título y año del caption. Responde al archivo con /registrar Título | Año."
	textInfoUsage         = "🕵️‍♂️ *Uso:* Responde a un mensaje del usuario o escribe `/info ID`"
	textBroadcastStart    = "📢 Iniciando transmisión global..."
	textNoPendingRequests = "📭 No hay solicitudes pendientes."
)
