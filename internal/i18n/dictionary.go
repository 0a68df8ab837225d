package i18n

var dictionaries = map[Language]map[string]string{
	Uzbek: {
		"currency":          "so'm",
		"search.title":      "Dacha qidirish",
		"search.empty":      "Hech narsa topilmadi. Filtrlarni o'zgartirib ko'ring.",
		"search.found":      "Topildi",
		"listing.not_found": "E'lon topilmadi",
		"listing.loading":   "Yuklanmoqda...",
		"listing.guests":    "Mehmonlar",
		"listing.rooms":     "Xonalar",
		"listing.beds":      "Yotoqlar",
		"listing.baths":     "Hammomlar",
		"listing.rating":    "Reyting",
		"listing.per_night": "kechasi",
		"checkout.nights":   "Kechalar",
		"checkout.base":     "Narx",
		"checkout.fee":      "Xizmat haqi",
		"checkout.total":    "Jami",
		"checkout.success":  "Bron qabul qilindi! Tez orada siz bilan bog'lanamiz.",
		"checkout.pending":  "Yuborilmoqda...",
		"favorites.added":   "Sevimlilarga qo'shildi",
		"favorites.removed": "Sevimlilardan olib tashlandi",
		"favorites.empty":   "Sevimlilar ro'yxati bo'sh",
		"error.name":        "Ismingizni kiriting",
		"error.phone":       "Telefon raqamingizni kiriting",
		"error.dates":       "Kelish va ketish sanalarini tanlang",
		"amenity.pool":      "Basseyn",
		"amenity.sauna":     "Sauna",
		"amenity.bbq":       "Mangal",
		"amenity.wifi":      "Wi-Fi",
		"amenity.ac":        "Konditsioner",
		"amenity.kitchen":   "Oshxona",
		"region.any":        "Barcha hududlar",
		"region.tashkent":   "Toshkent",
		"region.chimgan":    "Chimyon",
		"region.charvak":    "Chorvoq",
		"region.bostanliq":  "Bo'stonliq",
		"region.zaamin":     "Zomin",
		"region.samarkand":  "Samarqand",
	},
	Russian: {
		"currency":          "сум",
		"search.title":      "Поиск дач",
		"search.empty":      "Ничего не найдено. Попробуйте изменить фильтры.",
		"search.found":      "Найдено",
		"listing.not_found": "Объявление не найдено",
		"listing.loading":   "Загрузка...",
		"listing.guests":    "Гости",
		"listing.rooms":     "Комнаты",
		"listing.beds":      "Кровати",
		"listing.baths":     "Санузлы",
		"listing.rating":    "Рейтинг",
		"listing.per_night": "за ночь",
		"checkout.nights":   "Ночей",
		"checkout.base":     "Стоимость",
		"checkout.fee":      "Сервисный сбор",
		"checkout.total":    "Итого",
		"checkout.success":  "Бронь принята! Мы скоро с вами свяжемся.",
		"checkout.pending":  "Отправка...",
		"favorites.added":   "Добавлено в избранное",
		"favorites.removed": "Удалено из избранного",
		"favorites.empty":   "В избранном пока пусто",
		"error.name":        "Введите имя",
		"error.phone":       "Введите номер телефона",
		"error.dates":       "Выберите даты заезда и выезда",
		"amenity.pool":      "Бассейн",
		"amenity.sauna":     "Сауна",
		"amenity.bbq":       "Мангал",
		"amenity.wifi":      "Wi-Fi",
		"amenity.ac":        "Кондиционер",
		"amenity.kitchen":   "Кухня",
		"region.any":        "Все регионы",
		"region.tashkent":   "Ташкент",
		"region.chimgan":    "Чимган",
		"region.charvak":    "Чарвак",
		"region.bostanliq":  "Бостанлык",
		"region.zaamin":     "Заамин",
		"region.samarkand":  "Самарканд",
	},
	English: {
		"currency":          "UZS",
		"search.title":      "Find a dacha",
		"search.empty":      "Nothing found. Try changing the filters.",
		"search.found":      "Found",
		"listing.not_found": "Listing not found",
		"listing.loading":   "Loading...",
		"listing.guests":    "Guests",
		"listing.rooms":     "Rooms",
		"listing.beds":      "Beds",
		"listing.baths":     "Baths",
		"listing.rating":    "Rating",
		"listing.per_night": "per night",
		"checkout.nights":   "Nights",
		"checkout.base":     "Price",
		"checkout.fee":      "Service fee",
		"checkout.total":    "Total",
		"checkout.success":  "Booking received! We will contact you shortly.",
		"checkout.pending":  "Sending...",
		"favorites.added":   "Added to favorites",
		"favorites.removed": "Removed from favorites",
		"favorites.empty":   "No favorites yet",
		"error.name":        "Enter your name",
		"error.phone":       "Enter your phone number",
		"error.dates":       "Choose check-in and check-out dates",
		"amenity.pool":      "Pool",
		"amenity.sauna":     "Sauna",
		"amenity.bbq":       "BBQ",
		"amenity.wifi":      "Wi-Fi",
		"amenity.ac":        "Air conditioning",
		"amenity.kitchen":   "Kitchen",
		"region.any":        "All regions",
		"region.tashkent":   "Tashkent",
		"region.chimgan":    "Chimgan",
		"region.charvak":    "Charvak",
		"region.bostanliq":  "Bostanliq",
		"region.zaamin":     "Zaamin",
		"region.samarkand":  "Samarkand",
	},
}
